package handler

import (
	"net/http"

	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	hint         *middleware.SessionHint
	cookieName   string // リモートのセッションCookie名
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, hint *middleware.SessionHint, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		hint:         hint,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

type loginData struct {
	Redirect string
	Email    string
}

type registerData struct {
	Redirect  string
	Email     string
	FirstName string
	LastName  string
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/login", h.loginPage)
	e.POST("/login", h.login)
	e.GET("/register", h.registerPage)
	e.POST("/register", h.register)
	e.POST("/logout", h.logout)
}

func (h *AuthHandler) loginPage(c echo.Context) error {
	data := loginData{Redirect: redirectTarget(c.QueryParam("redirect"))}
	return render(c, http.StatusOK, "login", Page{Title: "Log in", Data: data})
}

// POST /login
func (h *AuthHandler) login(c echo.Context) error {
	var in usecase.LoginInput
	if err := c.Bind(&in); err != nil {
		return render(c, http.StatusBadRequest, "login", Page{Title: "Log in", Error: "invalid body", Data: loginData{}})
	}
	target := redirectTarget(c.FormValue("redirect"))

	s, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		p := withError(Page{Title: "Log in", Data: loginData{Redirect: target, Email: in.Email}}, err)
		return render(c, statusOf(err), "login", p)
	}

	h.startSession(c, s)
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *AuthHandler) registerPage(c echo.Context) error {
	data := registerData{Redirect: redirectTarget(c.QueryParam("redirect"))}
	return render(c, http.StatusOK, "register", Page{Title: "Register", Data: data})
}

// POST /register
func (h *AuthHandler) register(c echo.Context) error {
	var in usecase.RegisterInput
	if err := c.Bind(&in); err != nil {
		return render(c, http.StatusBadRequest, "register", Page{Title: "Register", Error: "invalid body", Data: registerData{}})
	}
	target := redirectTarget(c.FormValue("redirect"))

	s, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		data := registerData{Redirect: target, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
		return render(c, statusOf(err), "register", withError(Page{Title: "Register", Data: data}, err))
	}

	h.startSession(c, s)
	return c.Redirect(http.StatusSeeOther, target)
}

// POST /logout
// リモートの結果に関わらずCookieは消す。
func (h *AuthHandler) logout(c echo.Context) error {
	h.uc.Logout(c.Request().Context())

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	h.hint.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// セッションCookieをブラウザに渡し、ヒントを発行
func (h *AuthHandler) startSession(c echo.Context, s usecase.Session) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.MaxAge,
	})
	if err := h.hint.Issue(c, s.User); err != nil {
		c.Logger().Warn("session hint issue failed: ", err)
	}
}

// 外部サイトへの戻り先は捨てる
func redirectTarget(v string) string {
	if !middleware.SafeRedirect(v) {
		return "/"
	}
	return v
}
