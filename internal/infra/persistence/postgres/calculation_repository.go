package postgres

import (
	"context"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// calculationRepository implements the repository.CalculationRepository interface using GORM.
type calculationRepository struct {
	db *gorm.DB
}

// NewCalculationRepository is the constructor for calculationRepository.
func NewCalculationRepository(db *gorm.DB) repository.CalculationRepository {
	return &calculationRepository{db: db}
}

// Create persists a new calculation.
func (repo *calculationRepository) Create(ctx context.Context, calc *entity.Calculation) error {
	calcM := fromCalculationDomain(calc)

	if err := repo.db.WithContext(ctx).Create(calcM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("calculation owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create calculation")
	}

	calc.ID = calcM.ID
	calc.CreatedAt = calcM.CreatedAt
	calc.UpdatedAt = calcM.UpdatedAt

	return nil
}

// FindByID retrieves a single calculation by its unique ID.
func (repo *calculationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error) {
	var calcM model.CalculationModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&calcM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCalculationNotFound
		}

		return nil, errors.Wrap(err, "failed to find calculation by id")
	}

	return toCalculationDomain(&calcM), nil
}

// FindByUserID retrieves all calculations owned by a user, newest first.
func (repo *calculationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Calculation, error) {
	var calcMs []model.CalculationModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&calcMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find calculations by user id")
	}

	calcs := make([]*entity.Calculation, 0, len(calcMs))
	for i := range calcMs {
		calcs = append(calcs, toCalculationDomain(&calcMs[i]))
	}

	return calcs, nil
}

// Update modifies an existing calculation.
func (repo *calculationRepository) Update(ctx context.Context, calc *entity.Calculation) error {
	calcM := fromCalculationDomain(calc)

	if err := repo.db.WithContext(ctx).Save(calcM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update calculation")
	}

	calc.UpdatedAt = calcM.UpdatedAt

	return nil
}

// Delete removes a calculation by its ID.
func (repo *calculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CalculationModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete calculation")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCalculationNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCalculationDomain converts a GORM CalculationModel to a domain Calculation entity.
func toCalculationDomain(data *model.CalculationModel) *entity.Calculation {
	if data == nil {
		return nil
	}

	return &entity.Calculation{
		ID:        data.ID,
		UserID:    data.UserID,
		Operation: entity.Operation(data.Operation),
		Operand1:  data.Operand1,
		Operand2:  data.Operand2,
		Result:    data.Result,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCalculationDomain converts a domain Calculation entity to a GORM CalculationModel.
func fromCalculationDomain(data *entity.Calculation) *model.CalculationModel {
	if data == nil {
		return nil
	}

	return &model.CalculationModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Operation: string(data.Operation),
		Operand1:  data.Operand1,
		Operand2:  data.Operand2,
		Result:    data.Result,
	}
}
