package auth

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// AuthResponse is the envelope returned on successful signup and login
type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token,omitempty"`
	User    *PublicUser `json:"user,omitempty"`
}

func newAuthResponse(user *User, token string) AuthResponse {
	public := user.Public()
	return AuthResponse{
		Success: true,
		Token:   token,
		User:    &public,
	}
}

// SignupRequest payload
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Name,
			validation.Required,
			validation.Length(1, 50),
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			// bcrypt truncates input past 72 bytes
			validation.Length(6, 72),
		),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

type AuthController struct {
	Logger     Logger
	Auther     Authenticator
	ContextKey string
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: "user",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	a.Logger = logger
	return a
}

// RegisterAuthRoutes mounts the public auth endpoints. The protected
// current-user route is mounted by the caller behind the token gate.
func RegisterAuthRoutes(router fiber.Router, controller *AuthController) {
	router.Post("/signup", controller.SignupPost)
	router.Post("/login", controller.LoginPost)
}

// SignupPost handles POST /api/auth/signup
func (a *AuthController) SignupPost(c *fiber.Ctx) error {
	payload := new(SignupRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("signup parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  validationDetail(err),
		})
	}

	token, user, err := a.Auther.SignUp(c.UserContext(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"errors":  "User already exists",
			})
		}
		// store or hashing fault, handled by the app error handler
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newAuthResponse(user, token))
}

// LoginPost handles POST /api/auth/login
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("login parse payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
		})
	}

	token, user, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid credentials",
			})
		}
		return err
	}

	return c.JSON(newAuthResponse(user, token))
}

// CurrentUser handles GET /api/auth/me. It expects the token gate to
// have attached the resolved user already.
func (a *AuthController) CurrentUser(c *fiber.Ctx) error {
	user, ok := UserFromLocals(c, a.ContextKey)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to access this route",
		})
	}

	public := user.Public()
	return c.JSON(fiber.Map{
		"success": true,
		"user":    &public,
	})
}

// UserFromLocals reads the gate-attached user from the fiber context
func UserFromLocals(c *fiber.Ctx, key string) (*User, bool) {
	if key == "" {
		key = "user"
	}
	user, ok := c.Locals(key).(*User)
	return user, ok
}

func validationDetail(err error) any {
	var ve validation.Errors
	if errors.As(err, &ve) {
		return ve
	}
	return err.Error()
}
