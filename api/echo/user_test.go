package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/chuo/core/user"
)

func Test_authApi_signup(t *testing.T) {
	app := initApp(t)
	createUser(t, app.usrSvc, "Taken Guy", "taken@test.cd", "s3cretz0rz", user.RoleStudent)

	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":     "this field is required",
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "invalid email", body: marchallObj(t, user.NewUser{Name: "Awe Lol", Email: "lol", Password: "s3cretz0rz"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "invalid role", body: marchallObj(t, user.NewUser{Name: "Awe Lol", Email: "awe@test.cd", Password: "s3cretz0rz", Role: "dean"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "invalid value"}),
		},
		{
			name: "password too short", body: marchallObj(t, user.NewUser{Name: "Awe Lol", Email: "awe@test.cd", Password: "lol"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password must contain at least 8 characters"}),
		},
		{
			name: "password all numeric", body: marchallObj(t, user.NewUser{Name: "Awe Lol", Email: "awe@test.cd", Password: "12345678"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be entirely numeric"}),
		},
		{
			name: "password too similar to email", body: marchallObj(t, user.NewUser{Name: "Awe Lol", Email: "awe@test.cd", Password: "awe@test.cd"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be similar to user attributes"}),
		},
		{
			name: "email taken", body: marchallObj(t, user.NewUser{Name: "Copy Cat", Email: "Taken@test.cd", Password: "s3cretz0rz"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
		{
			name: "teacher signup", body: marchallObj(t, user.NewUser{Name: "Prof Kalle", Email: "kalle@test.cd", Password: "s3cretz0rz", Role: user.RoleTeacher}),
			wantCode: http.StatusCreated, extra: user.RoleTeacher,
		},
		{
			name: "default role is student", body: marchallObj(t, user.NewUser{Name: "Awe Lol", Email: "awe@test.cd", Password: "s3cretz0rz"}),
			wantCode: http.StatusCreated, extra: user.RoleStudent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/signup", tt.body)
			app.server.ServeHTTP(rec, req)

			if wantRole, ok := tt.extra.(string); ok {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var usr user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
					t.Fatalf("failed to unmarshal User: %v", err)
				}
				if usr.ID == 0 {
					t.Error("ID not set")
				}
				if usr.Role != wantRole {
					t.Errorf("Role = %s, want %s", usr.Role, wantRole)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_login(t *testing.T) {
	app := initApp(t)
	usr := createUser(t, app.usrSvc, "Awe Lol", "awe@test.cd", "s3cretz0rz", user.RoleStudent)

	authFailed := marchallObj(t, httpErr{Error: "authentication failed"})

	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown email", body: marchallObj(t, LoginRequest{Email: "ghost@test.cd", Password: "s3cretz0rz"}),
			wantCode: http.StatusBadRequest, wantData: authFailed,
		},
		{
			name: "wrong password", body: marchallObj(t, LoginRequest{Email: usr.Email, Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: authFailed,
		},
		{
			name: "email is case insensitive", body: marchallObj(t, LoginRequest{Email: "AWE@Test.CD", Password: "s3cretz0rz"}),
			wantCode: http.StatusOK, extra: true,
		},
		{
			name: "ok", body: marchallObj(t, LoginRequest{Email: usr.Email, Password: "s3cretz0rz"}),
			wantCode: http.StatusOK, extra: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.server.ServeHTTP(rec, req)

			if tt.extra != nil {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var resp LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal LoginResponse: %v", err)
				}
				if resp.TokenType != "bearer" {
					t.Errorf("TokenType = %s, want bearer", resp.TokenType)
				}
				checkLoginToken(t, resp.Token, usr)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

// checkLoginToken parses the token and checks the embedded claims.
func checkLoginToken(t *testing.T, token string, usr user.User) {
	t.Helper()

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return appJWTConfig.SigningKey, nil
	})
	if err != nil {
		t.Fatalf("jwt.ParseWithClaims() failed: %v", err)
	}
	if claims.Email != usr.Email {
		t.Errorf("Email = %s, want %s", claims.Email, usr.Email)
	}
	if claims.Role != usr.Role {
		t.Errorf("Role = %s, want %s", claims.Role, usr.Role)
	}
	if !claims.IsStudent || claims.IsTeacher {
		t.Errorf("portal flags = (student=%t, teacher=%t), want (true, false)", claims.IsStudent, claims.IsTeacher)
	}
	if claims.Id == "" {
		t.Error("jti not set")
	}
}

func Test_authApi_me(t *testing.T) {
	app := initApp(t)
	usr := createUser(t, app.usrSvc, "Awe Lol", "awe@test.cd", "s3cretz0rz", user.RoleTeacher)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "ok", token: getToken(t, usr), wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/auth/me", tt.token)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
