package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Me returns the authenticated user's own record.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/user [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Get returns a user by ID.
//
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/users/user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout acknowledges a client-side session teardown. Tokens are stateless,
// so there is nothing to revoke server-side.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/users/logout [get]
func (h *UserHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// UpdateProfile applies partial profile mutations from a multipart form.
//
// @Summary      Update the current user's profile
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/users/profile/update [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.UpdateProfileInput{
		UserID:              userID,
		Name:                c.FormValue("name"),
		Phone:               c.FormValue("phone"),
		Bio:                 c.FormValue("bio"),
		Role:                c.FormValue("role"),
		LinkedIn:            c.FormValue("linkedin"),
		GitHub:              c.FormValue("github"),
		Skills:              splitSkills(c.FormValue("skills")),
		CompanyWebsite:      c.FormValue("website"),
		CompanyIndustry:     c.FormValue("industry"),
		CompanySize:         c.FormValue("size"),
		CompanyContactEmail: c.FormValue("contactEmail"),
		CompanyLocation:     c.FormValue("location"),
		CompanyDescription:  c.FormValue("description"),
	}

	image, err := readUpload(c, "image")
	if err != nil {
		return err
	}
	in.Image = image

	user, err := h.users.UpdateProfile(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdateResume replaces the applicant's stored resume.
//
// @Summary      Upload a new resume
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/users/profile/update-resume [patch]
func (h *UserHandler) UpdateResume(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	resume, err := readUpload(c, "resume")
	if err != nil {
		return err
	}
	if resume == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume is required")
	}

	user, err := h.users.UpdateResume(c.Request().Context(), userID, *resume)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// splitSkills parses a comma-separated skills form value.
func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
