package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/chuo/core"
)

func Test_validatePassword(t *testing.T) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	RegisterValidators(validate, translator)

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "lol", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "se cretz0rz", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "12345678", wantTag: pwdNotAllNumTag},
		{name: "similar to email", pwd: "awe@test.cd", wantTag: pwdAttrSimTag},
		{name: "similar to name", pwd: "AweLolZz", wantTag: pwdAttrSimTag},
		{name: "ok", pwd: "s3cretz0rz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := NewUser{Name: "Awe Lol", Email: "awe@test.cd", Password: tt.pwd}
			err := nu.Validate(validate)

			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}

			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error = %v, want validator.ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate() errors = %v, want tag %s", vErrs, tt.wantTag)
		})
	}
}

func Test_User_password(t *testing.T) {
	var usr User
	if err := usr.SetPassword("s3cretz0rz"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if len(usr.PasswordHash) == 0 {
		t.Fatal("PasswordHash not set")
	}
	if err := usr.CheckPassword("s3cretz0rz"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if err := usr.CheckPassword("nope"); err == nil {
		t.Error("CheckPassword() passed with a wrong password")
	}
}
