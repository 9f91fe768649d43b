package form

import (
	"net/http"
)

// LoginForm is the admin sign-in form.
type LoginForm struct {
	Submission

	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (f *LoginForm) Bind(r *http.Request) error {
	if err := parse(r); err != nil {
		return err
	}
	f.Username = r.PostForm.Get("username")
	f.Password = r.PostForm.Get("password")
	return nil
}

// Validate checks that both fields are filled in.
func (f *LoginForm) Validate() error {
	return check(f, "")
}
