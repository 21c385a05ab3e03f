package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/studiocheckout/internal/adapter/storage"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var orderColumns = []string{
	"id", "buyer_reference", "purchase_kind", "purchase_reference",
	"base_amount", "discount_amount", "wallet_amount", "tax_amount", "total_amount",
	"currency", "discount_code",
	"gateway_order_id", "gateway_payment_id", "ledger_tx_id",
	"state", "failure_reason", "annotation",
	"created_at", "updated_at", "settled_at",
}

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func openStates() []string {
	states := make([]string, 0, len(domain.NonTerminalStates))
	for _, s := range domain.NonTerminalStates {
		states = append(states, string(s))
	}
	return states
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := or.db.QueryBuilder.Insert("orders").
		Columns(orderColumns...).
		Values(
			order.ID, order.BuyerReference, string(order.PurchaseKind), order.PurchaseReference,
			order.BaseAmount, order.DiscountAmount, order.WalletAmount, order.TaxAmount, order.TotalAmount,
			order.Currency, order.DiscountCode,
			order.GatewayOrderID, order.GatewayPaymentID, order.LedgerTxID,
			string(order.State), order.FailureReason, order.Annotation,
			order.CreatedAt, order.UpdatedAt, order.SettledAt,
		)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = or.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

func (or *Repository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return or.readOne(ctx, sq.Eq{"id": orderID})
}

func (or *Repository) ReadOrderByGatewayID(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	if gatewayOrderID == "" {
		return nil, domain.ErrDataNotFound
	}
	return or.readOne(ctx, sq.Eq{"gateway_order_id": gatewayOrderID})
}

func (or *Repository) FindOpenOrder(ctx context.Context, key domain.PurchaseKey) (*domain.Order, error) {
	return or.readOne(ctx, sq.Eq{
		"buyer_reference":    key.BuyerReference,
		"purchase_reference": key.PurchaseReference,
		"state":              openStates(),
	})
}

func (or *Repository) readOne(ctx context.Context, where sq.Eq) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(where)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return order, nil
}

func (or *Repository) ListStaleOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"state": openStates()}).
		Where(sq.Lt{"created_at": createdBefore}).
		OrderBy("created_at")
	if limit > 0 {
		statement = statement.Limit(uint64(limit))
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateOrder applies updateFn to the order under a row lock and stores the
// result in the same transaction. Nothing is written when updateFn fails.
// Priced amounts are not updatable.
func (or *Repository) UpdateOrder(ctx context.Context, orderID string, updateFn port.UpdateOrderFn) (*domain.Order, error) {
	var order *domain.Order

	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		selectSt := or.db.QueryBuilder.
			Select(orderColumns...).
			From("orders").
			Where(sq.Eq{"id": orderID}).
			Suffix("FOR UPDATE")

		sql, args, err := selectSt.ToSql()
		if err != nil {
			return err
		}

		order, err = scanOrder(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrDataNotFound
			}
			return err
		}

		priced := *order
		err = updateFn(order)
		if err != nil {
			return err
		}
		// amounts are fixed at creation and never written back
		order.BaseAmount = priced.BaseAmount
		order.DiscountAmount = priced.DiscountAmount
		order.WalletAmount = priced.WalletAmount
		order.TaxAmount = priced.TaxAmount
		order.TotalAmount = priced.TotalAmount
		order.Currency = priced.Currency
		order.DiscountCode = priced.DiscountCode

		updateSt := or.db.QueryBuilder.
			Update("orders").
			SetMap(map[string]any{
				"gateway_order_id":   order.GatewayOrderID,
				"gateway_payment_id": order.GatewayPaymentID,
				"ledger_tx_id":       order.LedgerTxID,
				"state":              string(order.State),
				"failure_reason":     order.FailureReason,
				"annotation":         order.Annotation,
				"updated_at":         order.UpdatedAt,
				"settled_at":         order.SettledAt,
			}).
			Where(sq.Eq{"id": orderID})

		sql, args, err = updateSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) Ping(ctx context.Context) error {
	return or.db.Ping(ctx)
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	var kind, state string

	err := row.Scan(
		&order.ID,
		&order.BuyerReference,
		&kind,
		&order.PurchaseReference,
		&order.BaseAmount,
		&order.DiscountAmount,
		&order.WalletAmount,
		&order.TaxAmount,
		&order.TotalAmount,
		&order.Currency,
		&order.DiscountCode,
		&order.GatewayOrderID,
		&order.GatewayPaymentID,
		&order.LedgerTxID,
		&state,
		&order.FailureReason,
		&order.Annotation,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.SettledAt,
	)
	if err != nil {
		return nil, err
	}

	order.PurchaseKind = domain.PurchaseKind(kind)
	order.State = domain.OrderState(state)
	order.CreatedAt = order.CreatedAt.UTC()
	order.UpdatedAt = order.UpdatedAt.UTC()
	if order.SettledAt != nil {
		settled := order.SettledAt.UTC()
		order.SettledAt = &settled
	}

	return &order, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
