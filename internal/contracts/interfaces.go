package contracts

import "context"

// CompanySource loads the company document
// ⭐ SSOT: 회사 문서 로딩 인터페이스
type CompanySource interface {
	Load(ctx context.Context) ([]Company, error)
	Describe() string
}
