package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func sampleResult() *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:        1,
			DisplayID: "customer-000001",
			Name:      "Ann",
			Email:     "ann@x.com",
			Role:      domain.RoleCustomer,
			Status:    domain.StatusActive,
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		engineCalls    int
	}{
		{
			name: "successful registration",
			body: RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "Passw0rd!"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
					if role != domain.RoleCustomer {
						t.Errorf("omitted role must default to customer, got %q", role)
					}
					return &domain.User{ID: 1, DisplayID: "customer-000001", Name: name, Email: email, Role: role, Status: domain.StatusInactive}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			engineCalls:    1,
		},
		{
			name: "duplicate email",
			body: RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "Passw0rd!"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
			engineCalls:    1,
		},
		{
			name:           "short password rejected at the boundary",
			body:           RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "short"},
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			engineCalls:    0,
		},
		{
			name:           "malformed email rejected at the boundary",
			body:           RegisterRequest{Name: "Ann", Email: "not-an-email", Password: "Passw0rd!"},
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			engineCalls:    0,
		},
		{
			name:           "unknown role rejected at the boundary",
			body:           map[string]string{"name": "Ann", "email": "ann@x.com", "password": "Passw0rd!", "role": "admin"},
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			engineCalls:    0,
		},
		{
			name: "delivery failure",
			body: RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "Passw0rd!"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
					return nil, domain.ErrDeliveryFailed
				}
			},
			expectedStatus: http.StatusBadGateway,
			engineCalls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)
			h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

			w := performJSON(t, h.Register, http.MethodPost, "/auth/register", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if svc.Calls["Register"] != tt.engineCalls {
				t.Errorf("expected %d engine calls, got %d", tt.engineCalls, svc.Calls["Register"])
			}
		})
	}
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name           string
		body           OTPVerifyRequest
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful verification returns tokens",
			body: OTPVerifyRequest{Email: "ann@x.com", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, email, code string) (*domain.AuthResult, error) {
					return sampleResult(), nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non numeric code rejected at the boundary",
			body:           OTPVerifyRequest{Email: "ann@x.com", Code: "12a456"},
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "already active account",
			body: OTPVerifyRequest{Email: "ann@x.com", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, email, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrAlreadyActive
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "no challenge on file",
			body: OTPVerifyRequest{Email: "ann@x.com", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, email, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "wrong code",
			body: OTPVerifyRequest{Email: "ann@x.com", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, email, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPInvalid
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "expired code",
			body: OTPVerifyRequest{Email: "ann@x.com", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, email, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPExpired
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)
			h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

			w := performJSON(t, h.VerifyOTP, http.MethodPost, "/auth/otp/verify", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				data := body["data"].(map[string]interface{})
				if data["access_token"] != "access-token" || data["refresh_token"] != "refresh-token" {
					t.Errorf("missing tokens in response: %v", data)
				}
			}
		})
	}
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	genericAck := "If the email exists, an OTP has been sent"

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "existing account",
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown account gets the same acknowledgement",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.ForgotPasswordFunc = func(ctx context.Context, email string) error {
					return domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "inactive account gets the same acknowledgement",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.ForgotPasswordFunc = func(ctx context.Context, email string) error {
					return domain.ErrUserInactive
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "delivery failure is not masked",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.ForgotPasswordFunc = func(ctx context.Context, email string) error {
					return domain.ErrDeliveryFailed
				}
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	var okBodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)
			h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

			w := performJSON(t, h.ForgotPassword, http.MethodPost, "/auth/password/forgot", ForgotPasswordRequest{Email: "ann@x.com"})
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				data := body["data"].(map[string]interface{})
				if data["message"] != genericAck {
					t.Errorf("expected the generic acknowledgement, got %v", data["message"])
				}
				okBodies = append(okBodies, w.Body.String())
			}
		})
	}

	// All acknowledged responses must be byte identical so response content
	// cannot distinguish known from unknown accounts
	for i := 1; i < len(okBodies); i++ {
		if okBodies[i] != okBodies[0] {
			t.Errorf("acknowledgement bodies differ: %q vs %q", okBodies[0], okBodies[i])
		}
	}
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	t.Run("short new password never reaches the engine", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.ResetPassword, http.MethodPost, "/auth/password/reset",
			ResetPasswordRequest{Email: "ann@x.com", Code: "123456", NewPassword: "short"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if svc.Calls["ResetPassword"] != 0 {
			t.Error("engine must not be reached when validation fails")
		}
	})

	t.Run("successful reset", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.ResetPassword, http.MethodPost, "/auth/password/reset",
			ResetPasswordRequest{Email: "ann@x.com", Code: "123456", NewPassword: "BrandNewPass1"})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.ResetPasswordFunc = func(ctx context.Context, email, code, newPassword string) error {
			return domain.ErrUserInactive
		}
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.ResetPassword, http.MethodPost, "/auth/password/reset",
			ResetPasswordRequest{Email: "ann@x.com", Code: "123456", NewPassword: "BrandNewPass1"})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("expired code", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.ResetPasswordFunc = func(ctx context.Context, email, code, newPassword string) error {
			return domain.ErrOTPExpired
		}
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.ResetPassword, http.MethodPost, "/auth/password/reset",
			ResetPasswordRequest{Email: "ann@x.com", Code: "123456", NewPassword: "BrandNewPass1"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
			return sampleResult(), nil
		}
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.Login, http.MethodPost, "/auth/login", LoginRequest{Email: "ann@x.com", Password: "Passw0rd!"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["token_type"] != "Bearer" || data["access_token"] == "" {
			t.Errorf("unexpected login payload: %v", data)
		}
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		responses := make([]string, 0, 2)
		for _, engineErr := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials} {
			svc := mocks.NewMockAuthService()
			err := engineErr
			svc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
				return nil, err
			}
			h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

			w := performJSON(t, h.Login, http.MethodPost, "/auth/login", LoginRequest{Email: "ann@x.com", Password: "whatever1"})
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 for %v, got %d", err, w.Code)
			}
			responses = append(responses, w.Body.String())
		}
		if responses[0] != responses[1] {
			t.Errorf("401 bodies differ between unknown user and wrong password: %q vs %q", responses[0], responses[1])
		}
	})

	t.Run("inactive account is told to verify", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
			return nil, domain.ErrUserInactive
		}
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.Login, http.MethodPost, "/auth/login", LoginRequest{Email: "ann@x.com", Password: "Passw0rd!"})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_Refresh(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
			return sampleResult(), nil
		}
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.Refresh, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "refresh-token"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["access_token"] != "access-token" {
			t.Errorf("unexpected refresh payload: %v", data)
		}
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.Refresh, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "garbage"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_ResendOTP(t *testing.T) {
	t.Run("pending account", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.ResendOTP, http.MethodPost, "/auth/otp/resend", OTPResendRequest{Email: "ann@x.com"})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("already active account", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.ResendOTPFunc = func(ctx context.Context, email string) error {
			return domain.ErrAlreadyActive
		}
		h := NewAuthHandlers(svc, mocks.NewMockUserRepository())

		w := performJSON(t, h.ResendOTP, http.MethodPost, "/auth/otp/resend", OTPResendRequest{Email: "ann@x.com"})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_Me(t *testing.T) {
	t.Run("returns the profile for the authenticated user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, DisplayID: "customer-000001", Name: "Ann", Email: "ann@x.com", Role: domain.RoleCustomer, Status: domain.StatusActive}, nil
		}
		h := NewAuthHandlers(mocks.NewMockAuthService(), userRepo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Set("user_id", uint(1))
		h.Me(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["display_id"] != "customer-000001" {
			t.Errorf("unexpected profile: %v", data)
		}
	})

	t.Run("missing auth context", func(t *testing.T) {
		h := NewAuthHandlers(mocks.NewMockAuthService(), mocks.NewMockUserRepository())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		h.Me(c)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
