//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"notify-dispatch/internal/handler/dto/request"
	resdto "notify-dispatch/internal/handler/dto/response"
	"notify-dispatch/internal/pkg/jwt"
	"notify-dispatch/tests/common/authtest"
	"notify-dispatch/tests/common/dbtest"
	"notify-dispatch/tests/common/helper"
	"notify-dispatch/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tokenURL         = "/api/auth/token"
	notificationsURL = "/api/notifications"
	budgetLimitURL   = "/api/admin/budgets/limit"

	testService = "orders"
	testSecret  = "orders-secret-0123456789"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
	tenantID  uuid.UUID
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
	s.tenantID = uuid.New()
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用のサービス資格情報を作成
	dbtest.SeedCredential(s.T(), s.DB, s.tenantID, testService, testSecret,
		[]string{jwt.ScopeSend, jwt.ScopeAdmin})
}

func (s *authSuite) TestIssueToken() {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		description    string
	}{
		{
			name: "正常なトークン発行",
			body: request.TokenRequest{
				TenantID: s.tenantID,
				Service:  testService,
				Secret:   testSecret,
			},
			expectedStatus: http.StatusOK,
			description:    "有効な資格情報でトークンが発行されること",
		},
		{
			name: "存在しないサービス",
			body: request.TokenRequest{
				TenantID: s.tenantID,
				Service:  "ghost",
				Secret:   testSecret,
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "未登録サービスではトークンが発行されないこと",
		},
		{
			name: "別テナントの資格情報",
			body: request.TokenRequest{
				TenantID: uuid.New(),
				Service:  testService,
				Secret:   testSecret,
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "テナントが違えば同じサービス名でも拒否されること",
		},
		{
			name: "間違ったシークレット",
			body: request.TokenRequest{
				TenantID: s.tenantID,
				Service:  testService,
				Secret:   "wrong-secret-9876543210",
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったシークレットは拒否されること",
		},
		{
			name: "短すぎるシークレット",
			body: request.TokenRequest{
				TenantID: s.tenantID,
				Service:  testService,
				Secret:   "short",
			},
			expectedStatus: http.StatusBadRequest,
			description:    "16文字未満のシークレットはバリデーションで弾かれること",
		},
		{
			name: "テナントIDなし",
			body: map[string]any{
				"service": testService,
				"secret":  testSecret,
			},
			expectedStatus: http.StatusBadRequest,
			description:    "テナントIDのないリクエストは弾かれること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := helper.PerformRequest(t, s.Router, http.MethodPost, tokenURL, tt.body, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				// 成功時のレスポンス形式チェック
				var tokenRes resdto.TokenResponse
				err := helper.DecodeResponseBody(t, w.Body, &tokenRes)
				require.NoError(t, err)
				require.NotEmpty(t, tokenRes.AccessToken, "アクセストークンが空")
				require.Equal(t, "bearer", tokenRes.TokenType)
				require.ElementsMatch(t, []string{jwt.ScopeSend, jwt.ScopeAdmin}, tokenRes.Scopes)

				// last_used_atが更新されることを確認
				var lastUsed interface{}
				err = s.DB.QueryRow(s.T().Context(),
					"SELECT last_used_at FROM service_credentials WHERE tenant_id = $1 AND service = $2",
					s.tenantID, testService).Scan(&lastUsed)
				require.NoError(t, err)
				require.NotNil(t, lastUsed, "last_used_atが更新されていない")
			}
		})
	}
}

func (s *authSuite) TestInactiveCredential() {
	s.Run("無効化された資格情報の拒否", func() {
		t := s.T()

		ctx := s.T().Context()
		_, err := s.DB.Exec(ctx,
			"UPDATE service_credentials SET is_active = false WHERE tenant_id = $1 AND service = $2",
			s.tenantID, testService)
		require.NoError(t, err)

		reqBody := request.TokenRequest{
			TenantID: s.tenantID,
			Service:  testService,
			Secret:   testSecret,
		}
		w := helper.PerformRequest(t, s.Router, http.MethodPost, tokenURL, reqBody, "")
		require.Equal(t, http.StatusForbidden, w.Code, "無効化された資格情報は拒否されるべき")
	})
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("期限切れトークンの拒否", func() {
		t := s.T()

		expiredToken := s.jwtHelper.CreateExpiredToken(t, s.tenantID, testService,
			[]string{jwt.ScopeSend})

		w := helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code, "期限切れトークンは拒否されるべき")
	})
}

func (s *authSuite) TestScopeEnforcement() {
	tests := []struct {
		name           string
		scopes         []string
		method         string
		path           string
		body           any
		expectedStatus int
		description    string
	}{
		{
			name:           "送信スコープのみで管理APIにアクセス",
			scopes:         []string{jwt.ScopeSend},
			method:         http.MethodPut,
			path:           budgetLimitURL,
			body:           map[string]any{"tenant_id": uuid.New(), "service": "*", "channel": "email", "limit_micro": 1000},
			expectedStatus: http.StatusForbidden,
			description:    "notify:adminスコープなしでは管理APIを使えないこと",
		},
		{
			name:           "管理スコープのみで通知APIにアクセス",
			scopes:         []string{jwt.ScopeAdmin},
			method:         http.MethodGet,
			path:           notificationsURL,
			body:           nil,
			expectedStatus: http.StatusForbidden,
			description:    "notify:sendスコープなしでは通知APIを使えないこと",
		},
		{
			name:           "両スコープ保持で通知APIにアクセス",
			scopes:         []string{jwt.ScopeSend, jwt.ScopeAdmin},
			method:         http.MethodGet,
			path:           notificationsURL,
			body:           nil,
			expectedStatus: http.StatusOK,
			description:    "必要なスコープを持っていればアクセスできること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := s.jwtHelper.GenerateToken(t, s.tenantID, testService, tt.scopes)
			w := helper.PerformRequest(t, s.Router, tt.method, tt.path, tt.body, token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)
		})
	}
}

func (s *authSuite) TestAuthenticationRequired() {
	s.Run("認証が必要なエンドポイント", func() {
		t := s.T()

		endpoints := []struct {
			method string
			path   string
		}{
			{http.MethodGet, notificationsURL},
			{http.MethodPost, notificationsURL},
			{http.MethodPut, budgetLimitURL},
		}

		for _, endpoint := range endpoints {
			w := helper.PerformRequest(t, s.Router, endpoint.method, endpoint.path, nil, "")
			require.Equal(t, http.StatusUnauthorized, w.Code, "認証なしでは拒否されるべき")

			w = helper.PerformRequest(t, s.Router, endpoint.method, endpoint.path, nil, "invalid-token")
			require.Equal(t, http.StatusUnauthorized, w.Code, "無効なトークンでは拒否されるべき")
		}
	})
}

func (s *authSuite) TestTokenRoundTrip() {
	s.Run("発行したトークンでAPIを呼べる", func() {
		t := s.T()

		token := authtest.IssueToken(t, s.Router, s.tenantID, testService, testSecret)

		w := helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, "発行直後のトークンが使えない")
	})
}
