// Package security はアウトバウンドHTTP取得のセキュリティ機能を提供する。
//
// フィード取得元URLは運用者が環境変数で自由に設定できるため、
// プライベートネットワークやクラウドメタデータIPへのリクエストを
// 発行しないようSSRF防止を全アウトバウンド取得に適用する。
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"

	"github.com/hitoshi/marketfeed/internal/model"
)

// SSRFGuardService はSSRF防止機能のインターフェースを定義する。
// フィード集約とレート・市場データ取得の全アウトバウンドHTTPで使用される。
type SSRFGuardService interface {
	// NewSafeClient はSSRF防止機能付きのHTTPクライアントを生成する。
	// safeurlライブラリにより、プライベートIP、ループバック、リンクローカル、
	// メタデータIPへのリクエストが自動的にブロックされる。
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client

	// ValidateURL はURLの安全性を事前に検証する。
	// スキーム、ホスト、IPアドレスの静的検証を行い、
	// 危険なURLの場合はエラーを返す。
	ValidateURL(rawURL string) error
}

// allowedSchemes はSSRF防止で許可されるURLスキーム。
var allowedSchemes = []string{"http", "https"}

// blockedNetworks はSSRF防止でブロックされるネットワーク範囲。
// パッケージ初期化時に1回だけパースし、ValidateURLでの検証に使用する。
// DNS解決後のIPアドレスはsafeurlがDialerレベルで検証するため、
// DNS再バインディング攻撃にも対応している。
var blockedNetworks = mustParseCIDRs(
	// プライベートIPアドレス (RFC 1918)
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	// ループバック (RFC 1122)
	"127.0.0.0/8",
	// リンクローカル (RFC 3927) - クラウドメタデータIP (169.254.169.254) を含む
	"169.254.0.0/16",
	// カレントネットワーク
	"0.0.0.0/8",
	// IPv6ループバック
	"::1/128",
	// IPv6リンクローカル
	"fe80::/10",
	// IPv6ユニークローカル
	"fc00::/7",
)

// mustParseCIDRs はCIDR文字列のリストをパースする。不正なCIDRはpanicする。
func mustParseCIDRs(cidrs ...string) []net.IPNet {
	networks := make([]net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR: %s: %v", cidr, err))
		}
		networks = append(networks, *network)
	}
	return networks
}

// ssrfGuard はSSRFGuardServiceの実装。
type ssrfGuard struct{}

// NewSSRFGuard はSSRFGuardServiceの新しいインスタンスを生成する。
func NewSSRFGuard() *ssrfGuard {
	return &ssrfGuard{}
}

// NewSafeClient はSSRF防止機能付きのHTTPクライアントを生成する。
// safeurlはnet.DialerのControlフックでDNS解決後のIPアドレスを検証するため、
// DNS再バインディング攻撃にも対応している。
func (g *ssrfGuard) NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	wrappedClient := safeurl.Client(config)
	return wrappedClient.Client
}

// ValidateURL はURLの安全性を事前に検証する。
// DNS解決を伴わない静的な検証のみを行う。
// フィード取得元リストの読み込み時にHTTPリクエストを送信する前の
// 事前チェックとして使用する。
// 形式の問題はINVALID_URL、ブロック対象へのアクセスはSSRF_BLOCKEDのエラーを返す。
func (g *ssrfGuard) ValidateURL(rawURL string) error {
	if rawURL == "" {
		return model.NewInvalidURLError("URLが空です")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.NewInvalidURLError(err.Error())
	}

	// スキーム検証: http/httpsのみ許可
	scheme := strings.ToLower(parsed.Scheme)
	if !isAllowedScheme(scheme) {
		return model.NewInvalidURLError(fmt.Sprintf("許可されていないスキーム: %s", scheme))
	}

	// ホスト検証: 空ホストを拒否
	host := parsed.Hostname()
	if host == "" {
		return model.NewInvalidURLError("ホストが空です")
	}

	// IPアドレスの場合: ブロック対象CIDRとの照合
	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return model.NewSSRFBlockedError()
		}
		return nil
	}

	// ホスト名の場合: localhost等の危険なホスト名を拒否
	if strings.EqualFold(host, "localhost") {
		return model.NewSSRFBlockedError()
	}

	return nil
}

// isAllowedScheme はURLスキームが許可リストに含まれるかを検証する。
func isAllowedScheme(scheme string) bool {
	for _, allowed := range allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

// isBlockedIP はIPアドレスがブロック対象のネットワーク範囲に含まれるかを検証する。
func isBlockedIP(ip net.IP) bool {
	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
