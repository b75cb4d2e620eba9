package domain

type ResidentProfile struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	IDNumber       string `json:"idNumber"`
	PhoneNumber    string `json:"phoneNumber"`
	Settlement     string `json:"settlement"`
	UnitNumber     string `json:"unitNumber"`
	PostalCode     string `json:"postalCode"`
	IsOwner        bool   `json:"isOwner"`
	Municipality   string `json:"municipality"`
	WardNumber     int32  `json:"wardNumber"`
	CouncillorName string `json:"councillorName"`
	IDPhotoPath    string `json:"idPhotoPath,omitempty"`
	FacePhotoPath  string `json:"facePhotoPath,omitempty"`
}

type LeaderProfile struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	IDNumber       string `json:"idNumber"`
	PhoneNumber    string `json:"phoneNumber"`
	Municipality   string `json:"municipality"`
	WardNumber     int32  `json:"wardNumber"`
	OfficeLocation string `json:"officeLocation"`
	Settlement     string `json:"settlement"`
	UnitNumber     string `json:"unitNumber"`
	PostalCode     string `json:"postalCode"`
	IDPhotoPath    string `json:"idPhotoPath,omitempty"`
	FacePhotoPath  string `json:"facePhotoPath,omitempty"`
	IsApproved     bool   `json:"isApproved"`
}

type OfficerProfile struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	IDNumber      string `json:"idNumber,omitempty"` // not required for officers
	PhoneNumber   string `json:"phoneNumber"`
	BadgeNumber   string `json:"badgeNumber"`
	Rank          string `json:"rank"`
	StationName   string `json:"stationName"`
	Municipality  string `json:"municipality"`
	PostalCode    string `json:"postalCode"`
	IDPhotoPath   string `json:"idPhotoPath,omitempty"`
	FacePhotoPath string `json:"facePhotoPath,omitempty"`
	IsApproved    bool   `json:"isApproved"`
}
