//go:build e2e

package notification_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

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
	notificationsURL = "/api/notifications"
	deadLettersURL   = "/api/notifications/dead-letters"
	callbacksURL     = "/api/delivery/callbacks"

	testService = "orders"
	testSecret  = "orders-secret-0123456789"
)

type notificationSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
	tenantID  uuid.UUID
	token     string
}

func TestNotificationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(notificationSuite))
}

func (s *notificationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *notificationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// サブテスト毎に新しいテナントを使い、レートバケットも予算も白紙にする
	s.tenantID = uuid.New()
	s.token = authtest.SeedAndIssueToken(s.T(), s.DB, s.Router, s.tenantID, testService, testSecret,
		[]string{jwt.ScopeSend})
}

func (s *notificationSuite) dispatch(t *testing.T, body any) (int, *resdto.DispatchResponse) {
	t.Helper()
	w := helper.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, body, s.token)
	var res resdto.DispatchResponse
	err := helper.DecodeResponseBody(t, w.Body, &res)
	require.NoError(t, err, "dispatchレスポンスのデコードに失敗: %s", w.Body.String())
	return w.Code, &res
}

func (s *notificationSuite) TestSynchronousSend() {
	tests := []struct {
		name         string
		body         request.SendNotificationRequest
		expectedLane string
		description  string
	}{
		{
			name: "同期フラグで即時配送",
			body: request.SendNotificationRequest{
				Channel:     "email",
				Recipient:   "rider@example.com",
				Subject:     "Driver on the way",
				Body:        "Your driver arrives in 3 minutes.",
				Synchronous: true,
			},
			expectedLane: "sync",
			description:  "同期送信はリクエスト内で配送まで完了すること",
		},
		{
			name: "クリティカルテンプレートは同期レーンに乗る",
			body: request.SendNotificationRequest{
				Channel:     "email",
				Recipient:   "rider@example.com",
				Subject:     "Your code",
				Body:        "123456",
				TemplateKey: "otp",
			},
			expectedLane: "sync",
			description:  "OTPテンプレートは優先度に関係なく同期扱いになること",
		},
		{
			name: "アプリ内通知はイベントハブ経由で配送",
			body: request.SendNotificationRequest{
				Channel:     "in_app",
				Recipient:   "user-42",
				Body:        "Your order has shipped.",
				Synchronous: true,
			},
			expectedLane: "sync",
			description:  "in_appチャネルはイベント発行が配送になること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			code, res := s.dispatch(t, tt.body)
			require.Equal(t, http.StatusOK, code, tt.description)
			require.Equal(t, "sent", res.Outcome)
			require.Equal(t, tt.expectedLane, res.Notification.Lane)
			require.Equal(t, "sent", res.Notification.Status)
			require.NotNil(t, res.Notification.ProviderMsgID, "provider_msg_idが空")
			require.NotNil(t, res.Notification.SentAt, "sent_atが記録されていない")

			// DB上もsentになっていること
			var status string
			err := s.DB.QueryRow(s.T().Context(),
				"SELECT status FROM notifications WHERE id = $1", res.Notification.ID).Scan(&status)
			require.NoError(t, err)
			require.Equal(t, "sent", status)
		})
	}
}

func (s *notificationSuite) TestAsynchronousLanes() {
	tests := []struct {
		name         string
		body         request.SendNotificationRequest
		expectedLane string
		description  string
	}{
		{
			name: "高優先度はpriorityレーン",
			body: request.SendNotificationRequest{
				Channel:   "in_app",
				Recipient: "user-42",
				Body:      "Payment confirmed.",
				Priority:  "high",
			},
			expectedLane: "priority",
			description:  "高優先度の非同期送信はpriorityレーンに入ること",
		},
		{
			name: "通常優先度はstandardレーン",
			body: request.SendNotificationRequest{
				Channel:   "in_app",
				Recipient: "user-42",
				Body:      "Weekly summary is ready.",
			},
			expectedLane: "standard",
			description:  "既定の非同期送信はstandardレーンに入ること",
		},
		{
			name: "低優先度はbulkレーン",
			body: request.SendNotificationRequest{
				Channel:   "in_app",
				Recipient: "user-42",
				Body:      "Check out this week's deals.",
				Priority:  "low",
			},
			expectedLane: "bulk",
			description:  "低優先度はバルクレーンに回ること",
		},
		{
			name: "バルクフラグはbulkレーン",
			body: request.SendNotificationRequest{
				Channel:   "in_app",
				Recipient: "user-42",
				Body:      "Campaign announcement.",
				Bulk:      true,
			},
			expectedLane: "bulk",
			description:  "バルク指定はバルクレーンに回ること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			code, res := s.dispatch(t, tt.body)
			require.Equal(t, http.StatusAccepted, code, tt.description)
			require.Equal(t, "queued", res.Outcome)
			require.Equal(t, tt.expectedLane, res.Notification.Lane)
			require.Equal(t, "queued", res.Notification.Status)
			require.Nil(t, res.Notification.SentAt, "非同期送信なのにsent_atが入っている")
		})
	}
}

func (s *notificationSuite) TestValidation() {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		description    string
	}{
		{
			name: "未知のチャネル",
			body: request.SendNotificationRequest{
				Channel:   "pigeon",
				Recipient: "somewhere",
				Body:      "hello",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			description:    "存在しないチャネルはドメイン検証で弾かれること",
		},
		{
			name: "不正なメールアドレス",
			body: request.SendNotificationRequest{
				Channel:   "email",
				Recipient: "not-an-address",
				Body:      "hello",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			description:    "メール形式でない受信者は弾かれること",
		},
		{
			name: "不正な電話番号",
			body: request.SendNotificationRequest{
				Channel:   "sms",
				Recipient: "abcdef",
				Body:      "hello",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			description:    "電話番号形式でない受信者は弾かれること",
		},
		{
			name: "本文なし",
			body: map[string]any{
				"channel":   "email",
				"recipient": "rider@example.com",
			},
			expectedStatus: http.StatusBadRequest,
			description:    "本文のないリクエストはバインディングで弾かれること",
		},
		{
			name: "不正な優先度",
			body: request.SendNotificationRequest{
				Channel:   "in_app",
				Recipient: "user-42",
				Body:      "hello",
				Priority:  "urgent",
			},
			expectedStatus: http.StatusUnprocessableEntity,
			description:    "未知の優先度は弾かれること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := helper.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, tt.body, s.token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)
		})
	}
}

func (s *notificationSuite) TestCorrelationReplay() {
	s.Run("同じ相関キーは単一レコードに収束する", func() {
		t := s.T()

		body := request.SendNotificationRequest{
			Channel:        "email",
			Recipient:      "rider@example.com",
			Subject:        "Receipt",
			Body:           "Thanks for riding with us.",
			Synchronous:    true,
			CorrelationKey: "order-1234-receipt",
		}

		code, first := s.dispatch(t, body)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "sent", first.Outcome)
		require.False(t, first.Replayed)

		// 同じキーで再送すると前回の結果がそのまま返る
		code, second := s.dispatch(t, body)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "sent", second.Outcome)
		require.True(t, second.Replayed, "再送がreplayedとして扱われていない")
		require.Equal(t, first.Notification.ID, second.Notification.ID, "別レコードが作られている")

		require.Equal(t, 1, dbtest.CountNotifications(t, s.DB, s.tenantID, ""),
			"相関キーが重複レコードを許している")
	})

	s.Run("相関キーが違えば別レコードになる", func() {
		t := s.T()

		body := request.SendNotificationRequest{
			Channel:        "in_app",
			Recipient:      "user-42",
			Body:           "First message.",
			CorrelationKey: "evt-001",
		}
		code, _ := s.dispatch(t, body)
		require.Equal(t, http.StatusAccepted, code)

		body.CorrelationKey = "evt-002"
		body.Body = "Second message."
		code, res := s.dispatch(t, body)
		require.Equal(t, http.StatusAccepted, code)
		require.False(t, res.Replayed)

		require.Equal(t, 2, dbtest.CountNotifications(t, s.DB, s.tenantID, ""))
	})
}

func (s *notificationSuite) TestRateLimit() {
	s.Run("ユーザー単位のレート制限", func() {
		t := s.T()

		userID := uuid.New()
		body := request.SendNotificationRequest{
			UserID:    &userID,
			Channel:   "in_app",
			Recipient: "user-42",
			Body:      "ping",
		}

		// 既定プランのユーザー毎バケットは容量10
		for i := range 10 {
			code, res := s.dispatch(t, body)
			require.Equal(t, http.StatusAccepted, code, "%d通目が通らない", i+1)
			require.Equal(t, "queued", res.Outcome)
		}

		w := helper.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, body, s.token)
		require.Equal(t, http.StatusTooManyRequests, w.Code, "11通目が拒否されない")
		require.NotEmpty(t, w.Header().Get("Retry-After"), "Retry-Afterヘッダーがない")

		var res resdto.DispatchResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "denied_quota", res.Outcome)
		require.NotNil(t, res.Notification.ErrorCode)
		require.Equal(t, "quota_denied", *res.Notification.ErrorCode)

		// 拒否された送信も監査用にfailed行として残る
		require.Equal(t, 10, dbtest.CountNotifications(t, s.DB, s.tenantID, "queued"))
		require.Equal(t, 1, dbtest.CountNotifications(t, s.DB, s.tenantID, "failed"))
	})

	s.Run("ユーザーが違えばバケットも別", func() {
		t := s.T()

		for i := range 12 {
			userID := uuid.New()
			body := request.SendNotificationRequest{
				UserID:    &userID,
				Channel:   "in_app",
				Recipient: fmt.Sprintf("user-%d", i),
				Body:      "ping",
			}
			code, _ := s.dispatch(t, body)
			require.Equal(t, http.StatusAccepted, code, "別ユーザーの%d通目が拒否された", i+1)
		}
	})

	s.Run("override_quotaは管理者スコープのみ有効", func() {
		t := s.T()

		userID := uuid.New()
		body := request.SendNotificationRequest{
			UserID:    &userID,
			Channel:   "in_app",
			Recipient: "user-ops",
			Body:      "ping",
		}

		for i := range 10 {
			code, _ := s.dispatch(t, body)
			require.Equal(t, http.StatusAccepted, code, "%d通目が通らない", i+1)
		}
		code, res := s.dispatch(t, body)
		require.Equal(t, http.StatusTooManyRequests, code)
		require.Equal(t, "denied_quota", res.Outcome)

		// sendスコープだけのトークンではフラグは無視される
		body.OverrideQuota = true
		code, _ = s.dispatch(t, body)
		require.Equal(t, http.StatusTooManyRequests, code, "sendスコープで迂回できてしまう")

		adminToken := authtest.SeedAndIssueToken(t, s.DB, s.Router, s.tenantID, "ops", "ops-secret-0123456789",
			[]string{jwt.ScopeSend, jwt.ScopeAdmin})
		w := helper.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, body, adminToken)
		require.Equal(t, http.StatusAccepted, w.Code, "管理者オーバーライドが通らない: %s", w.Body.String())
	})
}

func (s *notificationSuite) TestBudgetEnforcement() {
	period := time.Now().UTC().Format("2006-01")

	s.Run("予算超過で通常優先度は拒否される", func() {
		t := s.T()

		// メール1通は950マイクロドル。残り50では足りない
		dbtest.SeedLedger(t, s.DB, s.tenantID, testService, "email", period, 1000, 950)

		body := request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Promo",
			Body:        "Weekend deals inside.",
			Synchronous: true,
		}
		code, res := s.dispatch(t, body)
		require.Equal(t, http.StatusPaymentRequired, code)
		require.Equal(t, "denied_budget", res.Outcome)
		require.NotNil(t, res.Notification.ErrorCode)
		require.Equal(t, "budget_denied", *res.Notification.ErrorCode)

		// 拒否された分は消費に計上されない
		var consumed int64
		err := s.DB.QueryRow(s.T().Context(),
			"SELECT consumed_micro FROM budget_ledgers WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4",
			s.tenantID, testService, "email", period).Scan(&consumed)
		require.NoError(t, err)
		require.Equal(t, int64(950), consumed)
	})

	s.Run("高優先度は予算超過でも警告付きで通る", func() {
		t := s.T()

		dbtest.SeedLedger(t, s.DB, s.tenantID, testService, "email", period, 1000, 950)

		body := request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Security alert",
			Body:        "New login to your account.",
			Priority:    "high",
			Synchronous: true,
		}
		code, res := s.dispatch(t, body)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "sent", res.Outcome)
		require.True(t, res.BudgetWarning, "予算超過の高優先度送信に警告が付いていない")

		// 配送された分は実測で計上される
		var consumed int64
		err := s.DB.QueryRow(s.T().Context(),
			"SELECT consumed_micro FROM budget_ledgers WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4",
			s.tenantID, testService, "email", period).Scan(&consumed)
		require.NoError(t, err)
		require.Equal(t, int64(1900), consumed)
	})

	s.Run("予算内は警告なしで通る", func() {
		t := s.T()

		dbtest.SeedLedger(t, s.DB, s.tenantID, testService, "email", period, 1_000_000, 0)

		body := request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Receipt",
			Body:        "Your receipt is attached.",
			Synchronous: true,
		}
		code, res := s.dispatch(t, body)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "sent", res.Outcome)
		require.False(t, res.BudgetWarning)

		var consumed int64
		err := s.DB.QueryRow(s.T().Context(),
			"SELECT consumed_micro FROM budget_ledgers WHERE tenant_id = $1 AND service = $2 AND channel = $3 AND period = $4",
			s.tenantID, testService, "email", period).Scan(&consumed)
		require.NoError(t, err)
		require.Equal(t, int64(950), consumed)
	})

	s.Run("上限ゼロは無制限として扱われる", func() {
		t := s.T()

		// 限度行もレジャー行も無ければ計測対象外
		body := request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Hello",
			Body:        "No budget rows anywhere.",
			Synchronous: true,
		}
		code, res := s.dispatch(t, body)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "sent", res.Outcome)
		require.False(t, res.BudgetWarning)
	})
}

func (s *notificationSuite) TestGetAndList() {
	s.Run("作成した通知を取得できる", func() {
		t := s.T()

		code, res := s.dispatch(t, request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Receipt",
			Body:        "Thanks!",
			Synchronous: true,
		})
		require.Equal(t, http.StatusOK, code)

		w := helper.PerformRequest(t, s.Router, http.MethodGet,
			notificationsURL+"/"+res.Notification.ID.String(), nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)

		var got resdto.NotificationResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, res.Notification.ID, got.ID)
		require.Equal(t, s.tenantID, got.TenantID)
		require.Equal(t, testService, got.ServiceOrigin)
		require.Equal(t, "email", got.Channel)
		require.Equal(t, "sent", got.Status)
	})

	s.Run("別テナントの通知は見えない", func() {
		t := s.T()

		code, res := s.dispatch(t, request.SendNotificationRequest{
			Channel:   "in_app",
			Recipient: "user-42",
			Body:      "secret",
		})
		require.Equal(t, http.StatusAccepted, code)

		otherToken := s.jwtHelper.GenerateToken(t, uuid.New(), testService, []string{jwt.ScopeSend})
		w := helper.PerformRequest(t, s.Router, http.MethodGet,
			notificationsURL+"/"+res.Notification.ID.String(), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code, "他テナントから見えてしまっている")
	})

	s.Run("不正なIDは400", func() {
		t := s.T()

		w := helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"/not-a-uuid", nil, s.token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("存在しないIDは404", func() {
		t := s.T()

		w := helper.PerformRequest(t, s.Router, http.MethodGet,
			notificationsURL+"/"+uuid.NewString(), nil, s.token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("一覧とフィルタとページング", func() {
		t := s.T()

		for i := range 2 {
			code, _ := s.dispatch(t, request.SendNotificationRequest{
				Channel:   "in_app",
				Recipient: fmt.Sprintf("user-%d", i),
				Body:      "queued message",
			})
			require.Equal(t, http.StatusAccepted, code)
		}
		code, _ := s.dispatch(t, request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Receipt",
			Body:        "sent message",
			Synchronous: true,
		})
		require.Equal(t, http.StatusOK, code)

		type listBody struct {
			Notifications []resdto.NotificationListResponse `json:"notifications"`
			NextCursor    string                            `json:"next_cursor"`
		}

		// 全部で3件
		w := helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var all listBody
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &all))
		require.Len(t, all.Notifications, 3)

		// ステータスで絞る
		w = helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?status=queued", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var queued listBody
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &queued))
		require.Len(t, queued.Notifications, 2)

		// チャネルで絞る
		w = helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?channel=email", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var emails listBody
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &emails))
		require.Len(t, emails.Notifications, 1)

		// カーソルページング
		w = helper.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?limit=2", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var page1 listBody
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &page1))
		require.Len(t, page1.Notifications, 2)
		require.NotEmpty(t, page1.NextCursor, "次ページのカーソルがない")

		w = helper.PerformRequest(t, s.Router, http.MethodGet,
			notificationsURL+"?limit=2&after="+page1.NextCursor, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var page2 listBody
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &page2))
		require.Len(t, page2.Notifications, 1)
		require.Empty(t, page2.NextCursor)

		// 2ページ目に1ページ目と同じレコードが出ないこと
		seen := map[uuid.UUID]bool{}
		for _, n := range page1.Notifications {
			seen[n.ID] = true
		}
		for _, n := range page2.Notifications {
			require.False(t, seen[n.ID], "ページを跨いで同じレコードが返っている")
		}
	})
}

func (s *notificationSuite) TestCancel() {
	s.Run("キュー済み通知の取り消し", func() {
		t := s.T()

		code, res := s.dispatch(t, request.SendNotificationRequest{
			Channel:   "in_app",
			Recipient: "user-42",
			Body:      "cancel me",
		})
		require.Equal(t, http.StatusAccepted, code)

		w := helper.PerformRequest(t, s.Router, http.MethodDelete,
			notificationsURL+"/"+res.Notification.ID.String(), nil, s.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		var status string
		err := s.DB.QueryRow(s.T().Context(),
			"SELECT status FROM notifications WHERE id = $1", res.Notification.ID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "canceled", status)

		// 二重取り消しは409
		w = helper.PerformRequest(t, s.Router, http.MethodDelete,
			notificationsURL+"/"+res.Notification.ID.String(), nil, s.token)
		require.Equal(t, http.StatusConflict, w.Code, "取り消し済みの再取り消しが通ってしまう")
	})

	s.Run("送信済み通知は取り消せない", func() {
		t := s.T()

		code, res := s.dispatch(t, request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Done",
			Body:        "already out the door",
			Synchronous: true,
		})
		require.Equal(t, http.StatusOK, code)

		w := helper.PerformRequest(t, s.Router, http.MethodDelete,
			notificationsURL+"/"+res.Notification.ID.String(), nil, s.token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("存在しないIDの取り消しは404", func() {
		t := s.T()

		w := helper.PerformRequest(t, s.Router, http.MethodDelete,
			notificationsURL+"/"+uuid.NewString(), nil, s.token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *notificationSuite) TestDeliveryCallback() {
	s.Run("プロバイダ確認で配送済みになる", func() {
		t := s.T()

		code, res := s.dispatch(t, request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "Track me",
			Body:        "callback flow",
			Synchronous: true,
		})
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, res.Notification.ProviderMsgID)

		cb := request.DeliveryCallbackRequest{ProviderMsgID: *res.Notification.ProviderMsgID}
		w := helper.PerformRequest(t, s.Router, http.MethodPost, callbacksURL, cb, "")
		require.Equal(t, http.StatusOK, w.Code)

		var confirmed resdto.NotificationResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &confirmed))
		require.Equal(t, "delivered", confirmed.Status)
		require.NotNil(t, confirmed.DeliveredAt, "delivered_atが入っていない")

		// 二重コールバックは409
		w = helper.PerformRequest(t, s.Router, http.MethodPost, callbacksURL, cb, "")
		require.Equal(t, http.StatusConflict, w.Code, "二重コールバックが通ってしまう")
	})

	s.Run("未知のプロバイダIDは404", func() {
		t := s.T()

		cb := request.DeliveryCallbackRequest{ProviderMsgID: "mock-" + uuid.NewString()}
		w := helper.PerformRequest(t, s.Router, http.MethodPost, callbacksURL, cb, "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("プロバイダIDなしは400", func() {
		t := s.T()

		w := helper.PerformRequest(t, s.Router, http.MethodPost, callbacksURL, map[string]any{"status": "delivered"}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *notificationSuite) TestDeadLettersAndRequeue() {
	s.Run("failed行はデッドレター一覧に出てリキューできる", func() {
		t := s.T()

		// レート制限を使い切って監査用のfailed行を作る
		userID := uuid.New()
		body := request.SendNotificationRequest{
			UserID:    &userID,
			Channel:   "in_app",
			Recipient: "user-42",
			Body:      "burst",
		}
		for range 10 {
			code, _ := s.dispatch(t, body)
			require.Equal(t, http.StatusAccepted, code)
		}
		code, denied := s.dispatch(t, body)
		require.Equal(t, http.StatusTooManyRequests, code)

		// デッドレター一覧に載る
		w := helper.PerformRequest(t, s.Router, http.MethodGet, deadLettersURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var dead struct {
			Notifications []resdto.NotificationListResponse `json:"notifications"`
		}
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &dead))
		require.Len(t, dead.Notifications, 1)
		require.Equal(t, denied.Notification.ID, dead.Notifications[0].ID)

		// リキューで再投入される
		w = helper.PerformRequest(t, s.Router, http.MethodPost,
			notificationsURL+"/"+denied.Notification.ID.String()+"/requeue", nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)

		var requeued resdto.NotificationResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &requeued))
		require.Equal(t, "queued", requeued.Status)
		require.Equal(t, int32(0), requeued.AttemptCount)
		require.Nil(t, requeued.ErrorCode)
	})

	s.Run("キュー済み通知はリキューできない", func() {
		t := s.T()

		code, res := s.dispatch(t, request.SendNotificationRequest{
			Channel:   "in_app",
			Recipient: "user-42",
			Body:      "still queued",
		})
		require.Equal(t, http.StatusAccepted, code)

		w := helper.PerformRequest(t, s.Router, http.MethodPost,
			notificationsURL+"/"+res.Notification.ID.String()+"/requeue", nil, s.token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("正常系ではデッドレターは空", func() {
		t := s.T()

		code, _ := s.dispatch(t, request.SendNotificationRequest{
			Channel:     "email",
			Recipient:   "rider@example.com",
			Subject:     "fine",
			Body:        "all good",
			Synchronous: true,
		})
		require.Equal(t, http.StatusOK, code)

		w := helper.PerformRequest(t, s.Router, http.MethodGet, deadLettersURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, strings.Contains(w.Body.String(), `"notifications":[]`),
			"デッドレターが空でない: %s", w.Body.String())
	})
}
