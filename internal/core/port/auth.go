package port

type TokenPayload struct {
	BuyerReference string
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(buyerReference string) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
