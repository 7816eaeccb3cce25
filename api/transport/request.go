package transport

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// SaveSkillsRequest is the full-replace profile payload. UserID is
// optional; when present it must match the authenticated caller.
type SaveSkillsRequest struct {
	UserID        string   `json:"userId"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
	Availability  []string `json:"availability"`
	Public        *bool    `json:"public"`
}

// SwapRequest files a proposal into the target user's inbox.
type SwapRequest struct {
	TargetEmail  string `json:"targetEmail"`
	OfferedSkill string `json:"offeredSkill"`
	WantedSkill  string `json:"wantedSkill"`
	Message      string `json:"message"`
}

// SwapActionRequest resolves a pending proposal in the caller's inbox.
type SwapActionRequest struct {
	RequesterEmail string `json:"requesterEmail"`
	OfferedSkill   string `json:"offeredSkill"`
	WantedSkill    string `json:"wantedSkill"`
	Action         string `json:"action"`
}

type AnnouncementRequest struct {
	Message string `json:"message"`
}

type AdminSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type BanRequest struct {
	Reason string `json:"reason"`
}
