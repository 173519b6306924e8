package handlers

import (
	"errors"
	"net/http"

	"transparencia-salud-server/internal/api/middleware"
	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Store        store.Store
	Tokens       *auth.TokenIssuer
	CookieMaxAge int // seconds
}

// LoginPage renders the login form. ?registro=exitoso shows the
// post-registration notice.
func (h *UserHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"registro": c.Query("registro") == "exitoso",
	})
}

// Login checks the form credentials and, on success, stores the access token
// in an http-only cookie and redirects to the dashboard. A wrong password
// never issues a token.
func (h *UserHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Correo y contraseña son obligatorios"})
		return
	}

	user, err := h.Store.GetUserByEmail(c.Request.Context(), email)
	if err != nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Correo o contraseña incorrectos"})
		return
	}

	token, err := h.Tokens.Generate(user.Email)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "No se pudo iniciar sesión"})
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, "Bearer "+token, h.CookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/panel")
}

func (h *UserHandler) RegistroPage(c *gin.Context) {
	c.HTML(http.StatusOK, "registro.html", gin.H{})
}

// Registro creates a user account. Duplicate emails surface from the unique
// constraint on usuarios.email, not from a pre-check.
func (h *UserHandler) Registro(c *gin.Context) {
	nombre := c.PostForm("nombre")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if nombre == "" || email == "" || password == "" {
		c.HTML(http.StatusOK, "registro.html", gin.H{"error": "Todos los campos son obligatorios"})
		return
	}
	if password != confirm {
		c.HTML(http.StatusOK, "registro.html", gin.H{"error": "Las contraseñas no coinciden"})
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "registro.html", gin.H{"error": "No se pudo completar el registro"})
		return
	}

	_, err = h.Store.CreateUser(c.Request.Context(), models.Usuario{
		Email:        email,
		Nombre:       nombre,
		PasswordHash: hashed,
		EsActivo:     true,
		EsAdmin:      false,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.HTML(http.StatusOK, "registro.html", gin.H{"error": "Este correo ya está registrado"})
			return
		}
		c.HTML(http.StatusInternalServerError, "registro.html", gin.H{"error": "No se pudo completar el registro"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login?registro=exitoso")
}

// Logout clears the access-token cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// ListarUsuarios is the admin-only account listing. Hashes stay out of the
// response via the model's json tags.
func (h *UserHandler) ListarUsuarios(c *gin.Context) {
	usuarios, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron consultar los usuarios"})
		return
	}
	if usuarios == nil {
		usuarios = []models.Usuario{}
	}
	c.JSON(http.StatusOK, usuarios)
}
