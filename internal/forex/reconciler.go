package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/marketfeed/internal/model"
)

// targetCurrencies はプロバイダAから取得する対象通貨の固定セット。
var targetCurrencies = []string{"EUR", "GBP", "ZAR"}

// fallbackCurrency はプロバイダBから取得する追加通貨。
const fallbackCurrency = "ZWL"

// errDelimiter は蓄積したプロバイダ別エラーメッセージの結合デリミタ。
const errDelimiter = "; "

// Result は為替レート照合の結果エンベロープ。
// 1件でもRatePointを生成できた場合はSuccess=trueとなり、
// 個別の取得失敗はErrorに蓄積された上で部分データと共に返される。
type Result struct {
	Success bool              `json:"success"`
	Data    []model.RatePoint `json:"data"`
	Error   string            `json:"error,omitempty"`
}

// Reconciler は独立した複数のレートプロバイダを照合する。
//
// プロバイダA（履歴照会対応）: 最新レートと直前営業日のレートを取得し、
// 通貨ごとに前日比を計算する。
// プロバイダB（最新のみ）: 追加1ペアを取得する。履歴がないため
// 変化量は常に取得不能、トレンドは常にstableとなる。
type Reconciler struct {
	httpClient  *http.Client
	logger      *slog.Logger
	apiBase     string
	fallbackURL string
	now         func() time.Time // テスト用に差し替え可能
}

// NewReconciler はReconcilerの新しいインスタンスを生成する。
// apiBaseはプロバイダAのベースURL、fallbackURLはプロバイダBの完全なURL。
func NewReconciler(httpClient *http.Client, logger *slog.Logger, apiBase, fallbackURL string) *Reconciler {
	return &Reconciler{
		httpClient:  httpClient,
		logger:      logger,
		apiBase:     strings.TrimRight(apiBase, "/"),
		fallbackURL: fallbackURL,
		now:         time.Now,
	}
}

// datedRates はプロバイダAのレスポンススキーマ。
type datedRates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// latestOnlyRates はプロバイダBのレスポンススキーマ。
type latestOnlyRates struct {
	Rates map[string]float64 `json:"rates"`
}

// GetForexRates は両プロバイダからレートを取得し、RatePointのリストに照合する。
//
// プロバイダAの最新取得が失敗した場合、Aのペアは結果から除外される。
// 直前営業日の取得だけが失敗した場合、Aのペアは変化量「取得不能」・
// トレンドstableで出力される（個別ペアの失敗が他のペアの処理を止めることはない）。
// エラーはプロバイダ単位で蓄積され、Success=falseとなるのは
// 両プロバイダから1件もRatePointを生成できなかった場合のみ。
func (r *Reconciler) GetForexRates(ctx context.Context) Result {
	points := []model.RatePoint{}
	var errs []string

	latest, err := r.fetchDated(ctx, "latest")
	if err != nil {
		r.logger.Warn("最新レートの取得に失敗しました",
			slog.String("provider", "primary"),
			slog.String("error", err.Error()),
		)
		errs = append(errs, fmt.Sprintf("最新レートの取得に失敗: %s", err.Error()))
	} else {
		var previous *datedRates
		prevDate := PreviousBusinessDay(r.now().UTC()).Format("2006-01-02")
		previous, err = r.fetchDated(ctx, prevDate)
		if err != nil {
			r.logger.Warn("直前営業日レートの取得に失敗しました（変化量なしで続行します）",
				slog.String("provider", "primary"),
				slog.String("date", prevDate),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("直前営業日レートの取得に失敗: %s", err.Error()))
			previous = nil
		}

		for _, currency := range targetCurrencies {
			rate, ok := latest.Rates[currency]
			if !ok {
				errs = append(errs, fmt.Sprintf("%s: 最新レートがレスポンスに含まれていません", currency))
				continue
			}

			change := model.Unavailable()
			if previous != nil {
				if prevRate, ok := previous.Rates[currency]; ok {
					change = model.Decimal(rate - prevRate)
				}
			}

			points = append(points, model.NewRatePoint("USD/"+currency, model.Decimal(rate), change))
		}
	}

	// プロバイダB: 履歴なしのため変化量は常に取得不能
	fb, err := r.fetchFallback(ctx)
	if err != nil {
		r.logger.Warn("補助プロバイダのレート取得に失敗しました",
			slog.String("provider", "fallback"),
			slog.String("error", err.Error()),
		)
		errs = append(errs, fmt.Sprintf("補助プロバイダの取得に失敗: %s", err.Error()))
	} else if rate, ok := fb.Rates[fallbackCurrency]; ok {
		points = append(points, model.NewRatePoint("USD/"+fallbackCurrency, model.Decimal(rate), model.Unavailable()))
	} else {
		errs = append(errs, fmt.Sprintf("%s: 補助プロバイダのレスポンスに含まれていません", fallbackCurrency))
	}

	result := Result{
		Success: len(points) > 0,
		Data:    points,
		Error:   strings.Join(errs, errDelimiter),
	}

	r.logger.Info("為替レート照合が完了しました",
		slog.Bool("success", result.Success),
		slog.Int("points", len(points)),
		slog.Int("errors", len(errs)),
	)

	return result
}

// fetchDated はプロバイダAからレートを取得する。
// pathSegmentには "latest" または "YYYY-MM-DD" 形式の日付を指定する。
func (r *Reconciler) fetchDated(ctx context.Context, pathSegment string) (*datedRates, error) {
	url := fmt.Sprintf("%s/%s?from=USD&to=%s", r.apiBase, pathSegment, strings.Join(targetCurrencies, ","))

	body, err := r.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	var rates datedRates
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗: %w", err)
	}
	if rates.Rates == nil {
		return nil, fmt.Errorf("ratesフィールドがレスポンスに含まれていません")
	}
	return &rates, nil
}

// fetchFallback はプロバイダBから最新レートを取得する。
func (r *Reconciler) fetchFallback(ctx context.Context) (*latestOnlyRates, error) {
	body, err := r.getJSON(ctx, r.fallbackURL)
	if err != nil {
		return nil, err
	}

	var rates latestOnlyRates
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗: %w", err)
	}
	if rates.Rates == nil {
		return nil, fmt.Errorf("ratesフィールドがレスポンスに含まれていません")
	}
	return &rates, nil
}

// getJSON はGETリクエストを発行してレスポンスボディを返す。
// 非2xxステータスはエラーとして扱う。
func (r *Reconciler) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("プロバイダがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンス読み取り失敗: %w", err)
	}
	return body, nil
}
