package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"noitru_backend/internals/configs"
	"noitru_backend/internals/constants"
	authHelper "noitru_backend/internals/features/users/auth/helper"
	authModel "noitru_backend/internals/features/users/auth/model"
	userModel "noitru_backend/internals/features/users/user/model"
	helper "noitru_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		UserName string  `json:"user_name"`
		FullName string  `json:"full_name"`
		Email    string  `json:"email"`
		Phone    *string `json:"phone"`
		Password string  `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}

	if err := authHelper.ValidateRegisterInput(input.UserName, input.FullName, input.Email, input.Password); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if input.Phone != nil && *input.Phone != "" && !authHelper.IsPhone(*input.Phone) {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Số điện thoại không hợp lệ")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không tạo được tài khoản")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    input.Phone,
		Password: string(hashed),
		Roles:    []string{constants.RoleTeacher},
	}
	if err := db.Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.Error(c, fiber.StatusConflict, "Email, tên đăng nhập hoặc số điện thoại đã tồn tại")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Không tạo được tài khoản")
	}

	user.Password = ""
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đăng ký thành công", user)
}

/* ==========================
   LOGIN
========================== */

// resolveLoginIdentifier tìm user theo email, tên đăng nhập hoặc số điện thoại.
// Identifier không phải email sẽ được quy về tài khoản tương ứng trước khi so mật khẩu.
func resolveLoginIdentifier(db *gorm.DB, identifier string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	q := db.Model(&userModel.UserModel{})

	switch {
	case authHelper.IsEmail(identifier):
		q = q.Where("email = ?", strings.ToLower(identifier))
	case authHelper.IsPhone(identifier):
		q = q.Where("phone = ?", identifier)
	default:
		q = q.Where("user_name = ?", identifier)
	}

	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	input.Identifier = strings.TrimSpace(input.Identifier)

	if err := authHelper.ValidateLoginInput(input.Identifier, input.Password); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := resolveLoginIdentifier(db, input.Identifier)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Tài khoản hoặc mật khẩu không đúng")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Tài khoản đã bị vô hiệu hóa. Liên hệ quản trị viên.")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Tài khoản hoặc mật khẩu không đúng")
	}

	return issueTokens(c, *user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Google ID Token không hợp lệ")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không giải mã được ID Token")
	}

	var user userModel.UserModel
	if err := db.Where("google_id = ?", claimSet.Sub).First(&user).Error; err != nil {
		// Chưa có theo google_id — thử khớp email đã đăng ký, không tự tạo tài khoản mới
		if err := db.Where("email = ?", strings.ToLower(claimSet.Email)).First(&user).Error; err != nil {
			return helper.Error(c, fiber.StatusForbidden, "Tài khoản Google chưa được cấp quyền. Liên hệ quản trị viên.")
		}
		db.Model(&user).Update("google_id", claimSet.Sub)
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Tài khoản đã bị vô hiệu hóa. Liên hệ quản trị viên.")
	}

	return issueTokens(c, user)
}

/* ==========================
   ISSUE TOKENS
========================== */

func issueTokens(c *fiber.Ctx, user userModel.UserModel) error {
	accessToken, err := GenerateAccessToken(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không tạo được access token")
	}
	refreshToken, err := GenerateRefreshToken(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không tạo được refresh token")
	}

	user.Password = ""
	return helper.Success(c, "Đăng nhập thành công", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}

/* ==========================
   LOGOUT (blacklist token)
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Thiếu token")
	}
	tokenString := parts[1]

	// exp của token để lên lịch dọn
	expiredAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if expFloat, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(expFloat), 0)
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := db.Create(&entry).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không đăng xuất được")
	}

	return helper.Success(c, "Đăng xuất thành công", nil)
}

/* ==========================
   REFRESH TOKEN
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Thiếu refresh token")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(input.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ hoặc đã hết hạn")
	}
	if t, _ := claims["type"].(string); t != "refresh" {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ")
	}

	rawID, _ := claims["user_id"].(string)
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", rawID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Tài khoản đã bị vô hiệu hóa")
	}

	return issueTokens(c, user)
}

/* ==========================
   RESET / CHANGE PASSWORD
========================== */

func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if !authHelper.IsEmail(input.Email) {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Email không hợp lệ")
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var user userModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Không tìm thấy tài khoản")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không đặt lại được mật khẩu")
	}
	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không đặt lại được mật khẩu")
	}

	return helper.Success(c, "Đặt lại mật khẩu thành công", nil)
}

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Không tìm thấy tài khoản")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Mật khẩu hiện tại không đúng")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không đổi được mật khẩu")
	}
	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Không đổi được mật khẩu")
	}

	return helper.Success(c, "Đổi mật khẩu thành công", nil)
}
