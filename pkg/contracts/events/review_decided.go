package events

// ReviewDecided é publicado no tópico "backoffice_review_decided" após cada decisão do backoffice.
type ReviewDecided struct {
	Entity   string `json:"entity"` // "topup" | "withdrawal" | "market"
	EntityID int64  `json:"entity_id"`
	Status   string `json:"status"`
	Actor    string `json:"actor"` // identidade da sessão do operador
	TsUnixMs int64  `json:"ts_unix_ms"`
}
