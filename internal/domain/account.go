package domain

// Account é uma conta de anúncios de uma plataforma. Sem ID a conta não é
// consultada.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// TokenOr retorna o token da conta ou o fallback quando a conta não tem um
func (a Account) TokenOr(fallback string) string {
	if a.Token != "" {
		return a.Token
	}
	return fallback
}

func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

type Platform struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}
