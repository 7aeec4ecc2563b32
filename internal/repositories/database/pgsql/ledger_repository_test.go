package pgsql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/socioges/treasury_backend/internal/core/domain"
	portsrepo "github.com/socioges/treasury_backend/internal/core/ports/repositories"
	"github.com/socioges/treasury_backend/internal/utils/accounting"
)

// opLogTx records the first keyword of every statement it executes. Reads and
// transaction control are never exercised by the bodies under test.
type opLogTx struct {
	log *[]string
}

var _ pgx.Tx = (*opLogTx)(nil)

func (t *opLogTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *opLogTx) Commit(ctx context.Context) error          { return nil }
func (t *opLogTx) Rollback(ctx context.Context) error        { return nil }

func (t *opLogTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *opLogTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *opLogTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *opLogTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *opLogTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	*t.log = append(*t.log, strings.Fields(sql)[0])
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *opLogTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *opLogTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *opLogTx) Conn() *pgx.Conn                                               { return nil }

// lockOrderAccountRepo records the account-lock and balance-apply calls in
// the same log as the statements, so a test can assert their relative order.
// The embedded nil facade covers the methods the bodies under test never hit.
type lockOrderAccountRepo struct {
	portsrepo.AccountRepositoryFacade
	log     *[]string
	lockErr error
}

func (r *lockOrderAccountRepo) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	*r.log = append(*r.log, "lock accounts")
	if r.lockErr != nil {
		return nil, r.lockErr
	}
	return map[string]domain.Account{}, nil
}

func (r *lockOrderAccountRepo) ApplyBalanceChanges(ctx context.Context, tx pgx.Tx, changes accounting.BalanceChanges, userID string, now time.Time) error {
	*r.log = append(*r.log, "apply balances")
	return nil
}

func testEntry() domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		EntryKind: domain.Expense,
		AccountID: uuid.NewString(),
		Amount:    decimal.NewFromInt(50),
		EntryDate: time.Now(),
	}
}

func testTransfer() domain.Transfer {
	return domain.Transfer{
		TransferID:    uuid.NewString(),
		FromAccountID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		Amount:        decimal.NewFromInt(300),
		TransferDate:  time.Now(),
	}
}

// The account row locks must be taken before the insert: the insert's foreign
// key check takes a share lock on the account rows, and locking exclusively
// only afterwards can deadlock against a concurrent mutation on the same
// account.
func TestSaveEntryLocksAccountsBeforeInsert(t *testing.T) {
	var log []string
	repo := &PgxLedgerRepository{accountRepo: &lockOrderAccountRepo{log: &log}}
	tx := &opLogTx{log: &log}

	entry := testEntry()
	changes := accounting.NewBalanceChanges()
	changes.ApplyEntry(entry, false)

	err := repo.saveEntryInTx(context.Background(), tx, entry, changes)

	require.NoError(t, err)
	require.Equal(t, []string{"lock accounts", "INSERT", "apply balances"}, log)
}

func TestSaveTransferLocksAccountsBeforeInsert(t *testing.T) {
	var log []string
	repo := &PgxLedgerRepository{accountRepo: &lockOrderAccountRepo{log: &log}}
	tx := &opLogTx{log: &log}

	transfer := testTransfer()
	changes := accounting.NewBalanceChanges()
	changes.ApplyTransfer(transfer, false)

	err := repo.saveTransferInTx(context.Background(), tx, transfer, changes)

	require.NoError(t, err)
	require.Equal(t, []string{"lock accounts", "INSERT", "apply balances"}, log)
}

func TestSaveTransferLockFailureSkipsInsert(t *testing.T) {
	var log []string
	lockErr := errors.New("lock timeout")
	repo := &PgxLedgerRepository{accountRepo: &lockOrderAccountRepo{log: &log, lockErr: lockErr}}
	tx := &opLogTx{log: &log}

	transfer := testTransfer()
	changes := accounting.NewBalanceChanges()
	changes.ApplyTransfer(transfer, false)

	err := repo.saveTransferInTx(context.Background(), tx, transfer, changes)

	require.ErrorIs(t, err, lockErr)
	require.Equal(t, []string{"lock accounts"}, log)
}
