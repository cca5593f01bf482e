package sqlite

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"mochini/internal/core/apperror"
	"mochini/internal/core/tx"
	"mochini/pkg/logger"
)

// Snapshot is a full copy of every collection, used for backup and restore.
type Snapshot struct {
	SchemaVersion int                        `json:"schemaVersion"`
	CreatedAt     time.Time                  `json:"createdAt"`
	Collections   map[string]json.RawMessage `json:"collections"`
}

// SnapshotService exports and imports zstd-compressed store snapshots.
type SnapshotService struct {
	store   *Store
	txm     tx.Manager
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewSnapshotService creates a snapshot service.
func NewSnapshotService(store *Store, txm tx.Manager) (*SnapshotService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &SnapshotService{
		store:   store,
		txm:     txm,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Export writes a compressed snapshot of every collection.
func (s *SnapshotService) Export(ctx context.Context, w io.Writer) error {
	snap := Snapshot{
		SchemaVersion: SchemaVersion,
		CreatedAt:     time.Now().UTC(),
		Collections:   make(map[string]json.RawMessage),
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		names, err := s.store.Collections(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			raw, _, err := s.store.Get(ctx, name)
			if err != nil {
				return err
			}
			snap.Collections[name] = json.RawMessage(raw)
		}
		return nil
	})
	if err != nil {
		return err
	}

	plain, err := json.Marshal(snap)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := w.Write(s.encoder.EncodeAll(plain, nil)); err != nil {
		return apperror.NewStorage("write snapshot", err)
	}

	logger.Info(ctx, "snapshot exported", "collections", len(snap.Collections), "bytes", len(plain))
	return nil
}

// Import restores every collection from a compressed snapshot in one
// transaction. Legacy field names from the pre-normalization layout are
// rewritten on the way in.
func (s *SnapshotService) Import(ctx context.Context, r io.Reader) error {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return apperror.NewStorage("read snapshot", err)
	}
	plain, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return apperror.NewValidation("snapshot is not a valid zstd stream").WithCause(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(plain, &snap); err != nil {
		return apperror.NewValidation("snapshot is not valid JSON").WithCause(err)
	}
	if snap.SchemaVersion > SchemaVersion {
		return apperror.NewValidation("snapshot schema version is newer than this build").
			WithDetail("snapshot", snap.SchemaVersion).
			WithDetail("supported", SchemaVersion)
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		for name, raw := range snap.Collections {
			normalized, err := normalizeLegacy(name, raw)
			if err != nil {
				return err
			}
			if err := s.store.Put(ctx, name, normalized); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "snapshot imported", "collections", len(snap.Collections))
	return nil
}

// legacyAliases maps old field names to current ones, per collection. The
// original data files wrote bank balances as both "saldo" and "saldoActual"
// and transaction amounts as both "monto" and "importe" depending on the
// screen that saved them.
var legacyAliases = map[string]map[string]string{
	"cuentas_bancarias": {
		"saldo": "saldoActual",
	},
	"transacciones_financieras": {
		"monto":     "importe",
		"cuenta_id": "cuentaId",
	},
}

func normalizeLegacy(name string, raw json.RawMessage) (json.RawMessage, error) {
	aliases, ok := legacyAliases[name]
	if !ok {
		return raw, nil
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperror.NewValidation("collection " + name + " is not a JSON array").WithCause(err)
	}

	for _, rec := range records {
		for old, current := range aliases {
			val, has := rec[old]
			if !has {
				continue
			}
			if _, hasCurrent := rec[current]; !hasCurrent {
				rec[current] = val
			}
			delete(rec, old)
		}
	}

	normalized, err := json.Marshal(records)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return normalized, nil
}
