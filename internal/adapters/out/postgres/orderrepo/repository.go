package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"strings"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository persists order aggregates in Postgres through GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &Repository{db: db}, nil
}

// Add inserts the aggregate and assigns the store-generated identifier back
// to it.
func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("add order: %w", err)
	}

	return aggregate.AssignID(dto.ID)
}

// Update overwrites the stored row for the aggregate's id. Updating an order
// that no longer exists returns an ObjectNotFoundError.
func (r *Repository) Update(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"first_name":       dto.FirstName,
			"last_name":        dto.LastName,
			"telephone_number": dto.TelephoneNumber,
			"email":            dto.Email,
			"delivery_address": dto.DeliveryAddress,
			"customer_count":   dto.CustomerCount,
			"order_total":      dto.OrderTotal,
		})
	if result.Error != nil {
		return fmt.Errorf("update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", dto.ID)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).First(&dto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("id", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return toDomain(dto), nil
}

// likeEscaper makes LIKE metacharacters in a filter value match themselves.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(value string) string {
	return likeEscaper.Replace(value)
}

// Search returns a lazy sequence of orders matching every non-empty filter as
// a case-sensitive substring. Filter values travel as bound statement
// parameters, never as SQL text, and LIKE metacharacters in them match
// literally. Ranging the sequence again re-executes the query.
func (r *Repository) Search(
	ctx context.Context,
	filters map[string]string,
	limit, offset int,
) iter.Seq2[*order.Order, error] {
	return func(yield func(*order.Order, error) bool) {
		tx := r.db.WithContext(ctx).Model(&OrderDTO{})

		for field, value := range filters {
			if value == "" {
				continue
			}
			tx = tx.Where(clause.Like{
				Column: clause.Column{Name: ColumnName(field)},
				Value:  "%" + escapeLikePattern(value) + "%",
			})
		}

		rows, err := tx.Order("id").Limit(limit).Offset(offset).Rows()
		if err != nil {
			yield(nil, fmt.Errorf("search orders: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto OrderDTO
			if err := tx.ScanRows(rows, &dto); err != nil {
				yield(nil, fmt.Errorf("search orders: %w", err))
				return
			}
			if !yield(toDomain(dto), nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("search orders: %w", err))
		}
	}
}
