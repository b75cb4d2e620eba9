package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	MyInfoCtx      ContextKey = "myInfo"
	ApplicationCtx ContextKey = "application"
	AppointmentCtx ContextKey = "appointment"
	SlotCtx        ContextKey = "slot"
	OfficerCtx     ContextKey = "officerProfile"
)
