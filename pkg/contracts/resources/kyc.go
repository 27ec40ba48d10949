package resources

// KYC é o perfil de verificação de identidade do usuário. Todos os campos são opcionais.
type KYC struct {
	DocType     Optional[string]    `json:"doc_type"`
	DocNumber   Optional[string]    `json:"doc_number"`
	DocImageURL Optional[string]    `json:"doc_image_url"`
	Verified    Optional[bool]      `json:"verified_bool"`
	VerifiedAt  Optional[Timestamp] `json:"verified_at"`
}

// KYCUpdate é o corpo de PUT /kyc/me. Campos ausentes ficam fora do JSON e o
// servidor mantém o valor guardado; um null explícito apagaria o campo.
type KYCUpdate struct {
	DocType     Optional[string] `json:"doc_type,omitzero"`
	DocNumber   Optional[string] `json:"doc_number,omitzero"`
	DocImageURL Optional[string] `json:"doc_image_url,omitzero"`
}
