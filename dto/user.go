package dto

// ==================== ATTENDANCE / JELLY DTOs ====================

type AttendanceStatusResponse struct {
	CanReceive bool `json:"can_receive"`
}

type ClaimAttendanceRequest struct {
	SelectedCat string `json:"selected_cat" validate:"required,oneof=dudu coco kkamnyang"`
	Mood        string `json:"mood" validate:"required,oneof=good neutral bad"`
}

func (r ClaimAttendanceRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ClaimAttendanceResponse struct {
	Success     bool   `json:"success"`
	JellyCount  int    `json:"jelly_count"`
	LoginStreak int    `json:"login_streak"`
	Message     string `json:"message"`
}

type JellyResponse struct {
	JellyCount    int     `json:"jelly_count"`
	LastJellyDate *string `json:"last_jelly_date"`
}

type ClaimJellyResponse struct {
	Success    bool   `json:"success"`
	JellyCount int    `json:"jelly_count"`
	Message    string `json:"message"`
	CanReceive bool   `json:"can_receive"`
}

type LoginTrackResponse struct {
	Success     bool `json:"success"`
	LoginStreak int  `json:"login_streak"`
}

// ==================== COMPANION DTOs ====================

type AdoptCatRequest struct {
	CatName string `json:"cat_name" validate:"required"`
}

func (r AdoptCatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AdoptCatResponse struct {
	Success      bool     `json:"success"`
	Reason       string   `json:"reason,omitempty"`
	Message      string   `json:"message"`
	JellyCount   int      `json:"jelly_count"`
	Required     int      `json:"required,omitempty"`
	UnlockedCats []string `json:"unlocked_cats"`
}

type UnlockedCatsResponse struct {
	UnlockedCats []string `json:"unlocked_cats"`
}

type SelectCatRequest struct {
	SelectedCat string `json:"selected_cat" validate:"required"`
}

func (r SelectCatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SelectedCatResponse struct {
	SelectedCat string `json:"selected_cat"`
}

type CatInfo struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Free     bool   `json:"free"`
	ImageURL string `json:"image_url,omitempty"`
}

type CatCatalogResponse struct {
	Cats []CatInfo `json:"cats"`
}

// ==================== MOOD DTOs ====================

type MoodEntryResponse struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

type MoodHistoryResponse struct {
	Moods []MoodEntryResponse `json:"moods"`
}
