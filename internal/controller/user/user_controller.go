package user

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/controller"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/service"
)

const maxProfileImageBytes = 5 << 20

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register godoc
// @Summary Register a user
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param email formData string true "Email"
// @Param profileImage formData file false "Profile image"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username already exists! / Email already exists!"
// @Router /users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	if req.ProfileImage != nil {
		data, err := readUpload(req.ProfileImage)
		if err != nil {
			log.Warn().Err(err).Str("username", req.Username).Msg("Register: unreadable profile image")
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid profile image", Details: []string{err.Error()}})
			return
		}
		req.ImageBytes = data
	}

	token, err := c.userService.Register(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// Login godoc
// @Summary Log in
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Password incorrect!"
// @Failure 404 {object} dto.ErrorResponse "User does not exist!"
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	token, err := c.userService.Login(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// GetAllUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /users/getAllUsers [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > maxProfileImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxProfileImageBytes)
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxProfileImageBytes))
}
