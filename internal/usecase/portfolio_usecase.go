package usecase

import (
	"context"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
)

type portfolioUsecase struct {
	repo domain.ContentRepository
}

func NewPortfolioUsecase(repo domain.ContentRepository) domain.PortfolioUsecase {
	return &portfolioUsecase{repo: repo}
}

func (uc *portfolioUsecase) GetPortfolio(ctx context.Context) (*domain.Portfolio, error) {
	p, err := uc.repo.GetPortfolio(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}
