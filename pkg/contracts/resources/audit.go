package resources

type AuditLog struct {
	ID        int64            `json:"id"`
	UserID    Optional[int64]  `json:"user_id"`
	Action    string           `json:"action"`
	Entity    string           `json:"entity"`
	EntityID  Optional[int64]  `json:"entity_id"`
	Summary   string           `json:"summary"`
	IP        Optional[string] `json:"ip"`
	UA        Optional[string] `json:"ua"`
	CreatedAt Timestamp        `json:"created_at"`
}
