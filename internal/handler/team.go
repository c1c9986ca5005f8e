package handler

import (
	"fmt"
	"log"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/invite"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/mail"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService   *service.TeamService
	inviteIssuer  *invite.Issuer
	mailer        mail.Mailer
	inviteBaseURL string
}

func NewTeamHandler(teamService *service.TeamService, inviteIssuer *invite.Issuer, mailer mail.Mailer, inviteBaseURL string) *TeamHandler {
	return &TeamHandler{
		teamService:   teamService,
		inviteIssuer:  inviteIssuer,
		mailer:        mailer,
		inviteBaseURL: inviteBaseURL,
	}
}

// requireOwner resolves the requester's team role and aborts unless it is
// "owner". Role comes from the membership row, not a global user attribute.
func (h *TeamHandler) requireOwner(c *gin.Context, workspaceID uint) bool {
	userID := middleware.GetCurrentUserID(c)
	role, err := h.teamService.GetUserTeamRole(workspaceID, userID)
	if err != nil {
		RespondError(c, err)
		return false
	}
	if role != model.RoleOwner {
		Forbidden(c, 40301, "only the workspace owner can manage the team")
		return false
	}
	return true
}

// POST /workspaces/:id/invitations
func (h *TeamHandler) Invite(c *gin.Context) {
	workspaceID := parseID(c.Param("id"))
	if !h.requireOwner(c, workspaceID) {
		return
	}

	var req struct {
		Email      string `json:"email" binding:"required,email"`
		Role       string `json:"role" binding:"required,max=32"`
		Department string `json:"department" binding:"max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}
	if req.Role == model.RoleOwner {
		BadRequest(c, 40001, "cannot invite another owner")
		return
	}

	token, err := h.inviteIssuer.Issue(workspaceID, req.Email, req.Role, req.Department)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	link := fmt.Sprintf("%s?token=%s", h.inviteBaseURL, token)
	if err := h.mailer.SendInvitation(c.Request.Context(), req.Email, link); err != nil {
		// best-effort: the token is still returned to the caller
		log.Printf("[team] send invitation to %s failed: %v", req.Email, err)
	}

	Success(c, gin.H{"token": token, "link": link})
}

// POST /invitations/accept
func (h *TeamHandler) Accept(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	claims, err := h.inviteIssuer.Consume(c.Request.Context(), req.Token)
	if err != nil {
		RespondError(c, err)
		return
	}

	userID := middleware.GetCurrentUserID(c)
	member, err := h.teamService.AddUserToWorkspace(claims.WorkspaceID, claims.Email, claims.Role, claims.Department, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, member)
}

// GET /workspaces/:id/members
func (h *TeamHandler) ListMembers(c *gin.Context) {
	workspaceID := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	// any member may view the roster
	if _, err := h.teamService.GetUserTeamRole(workspaceID, userID); err != nil {
		RespondError(c, err)
		return
	}

	members, err := h.teamService.ListMembers(workspaceID)
	if err != nil {
		RespondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(members))
	for _, m := range members {
		item := gin.H{
			"id":         m.UserID,
			"role":       m.Role,
			"department": m.Department,
			"joined_at":  m.JoinedAt,
		}
		if m.User != nil {
			item["name"] = m.User.Name
			item["email"] = m.User.Email
		}
		list = append(list, item)
	}
	Success(c, list)
}

// GET /workspaces/:id/members/:user_id/role
func (h *TeamHandler) GetMemberRole(c *gin.Context) {
	workspaceID := parseID(c.Param("id"))
	memberUserID := parseID(c.Param("user_id"))

	role, err := h.teamService.GetUserTeamRole(workspaceID, memberUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"role": role})
}

// PUT /workspaces/:id/members/:user_id
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	workspaceID := parseID(c.Param("id"))
	memberUserID := parseID(c.Param("user_id"))
	if !h.requireOwner(c, workspaceID) {
		return
	}

	var req struct {
		Role       *string `json:"role"`
		Department *string `json:"department"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	member, err := h.teamService.UpdateMember(workspaceID, memberUserID, req.Role, req.Department)
	if err != nil {
		RespondError(c, err)
		return
	}
	if member == nil {
		NotFound(c, 40401, "membership not found")
		return
	}
	Success(c, member)
}

// DELETE /workspaces/:id/members/:user_id
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	workspaceID := parseID(c.Param("id"))
	memberUserID := parseID(c.Param("user_id"))
	if !h.requireOwner(c, workspaceID) {
		return
	}

	member, err := h.teamService.RemoveMember(workspaceID, memberUserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if member == nil {
		NotFound(c, 40401, "membership not found")
		return
	}
	Success(c, gin.H{"message": "member removed"})
}

// DELETE /workspaces/:id/members
func (h *TeamHandler) RemoveAllMembers(c *gin.Context) {
	workspaceID := parseID(c.Param("id"))
	if !h.requireOwner(c, workspaceID) {
		return
	}

	removed, err := h.teamService.RemoveAllMembers(workspaceID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"removed": removed})
}
