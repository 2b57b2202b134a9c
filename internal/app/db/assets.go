package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardroom/internal/app/asset"
)

const assetColumns = `id, type, name, file_url, uploaded_by_user_id, width_cells, height_cells, created_at`

// AssetStore implements asset.Store.
type AssetStore struct {
	pool *pgxpool.Pool
}

// NewAssetStore returns an AssetStore on pool.
func NewAssetStore(pool *pgxpool.Pool) *AssetStore {
	return &AssetStore{pool: pool}
}

var _ asset.Store = (*AssetStore)(nil)

func (s *AssetStore) Create(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + assetColumns

	row := s.pool.QueryRow(ctx, query,
		a.ID, string(a.Type), a.Name, a.FileURL, a.UploadedByUserID, a.WidthCells, a.HeightCells, a.CreatedAt,
	)
	created, err := scanAsset(row)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("insert asset: %w", err)
	}
	return created, nil
}

func (s *AssetStore) List(ctx context.Context) ([]asset.Asset, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	assets := []asset.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func scanAsset(row pgx.Row) (asset.Asset, error) {
	var (
		a   asset.Asset
		typ string
	)
	err := row.Scan(&a.ID, &typ, &a.Name, &a.FileURL, &a.UploadedByUserID, &a.WidthCells, &a.HeightCells, &a.CreatedAt)
	if err != nil {
		return asset.Asset{}, err
	}
	a.Type = asset.Type(typ)
	return a, nil
}
