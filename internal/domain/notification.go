package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordNotificationData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes
}

type BookingNotificationData struct {
	ResidentName string `json:"residentName"`
	StationName  string `json:"stationName"`
	ScheduledAt  string `json:"scheduledAt"`
}

type CancellationNotificationData struct {
	ResidentName string `json:"residentName"`
	ScheduledAt  string `json:"scheduledAt"`
}

type LeaderDecisionNotificationData struct {
	ResidentName string `json:"residentName"`
	Approved     bool   `json:"approved"`
	Notes        string `json:"notes"`
}

type CertificateNotificationData struct {
	ResidentName      string `json:"residentName"`
	CertificateNumber string `json:"certificateNumber"`
	ExpiryDate        string `json:"expiryDate"`
}
