package create_quote

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pricing"
)

// UseCase расчет цены выбранной услуги без открытия мастера записи
type UseCase struct {
	catalog  Catalog
	engine   PriceEngine
	currency string
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog Catalog, engine PriceEngine, currency string, logger Logger) *UseCase {
	return &UseCase{
		catalog:  catalog,
		engine:   engine,
		currency: currency,
		logger:   logger,
	}
}

// Execute выполняет расчет цены
func (uc *UseCase) Execute(req *Request) (*Response, error) {
	uc.logger.Info("CreateQuote: service=%d, description=%q, variants=%v", req.ServiceID, req.Description, req.Variants)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateQuote: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	option, err := uc.catalog.Find(req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateQuote: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateQuote: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInvalidInput, err)
	}

	// 3. Проверяем выбор вариантов
	sel, description, err := buildSelection(option, req)
	if err != nil {
		uc.logger.Warn("CreateQuote: service id=%d: %v", req.ServiceID, err)
		return nil, err
	}

	// 4. Считаем цену
	breakdown := uc.engine.Explain(option.BasePrice, sel, option.ID)

	uc.logger.Info("CreateQuote: service=%d total=%d", option.ID, breakdown.Total)

	return &Response{
		ServiceID:   option.ID,
		ServiceName: option.Name,
		Description: description,
		BasePrice:   breakdown.BasePrice,
		Modifiers:   breakdown.Modifiers,
		Total:       breakdown.Total,
		Formatted:   pricing.FormatPrice(breakdown.Total, uc.currency),
		Currency:    uc.currency,
	}, nil
}
