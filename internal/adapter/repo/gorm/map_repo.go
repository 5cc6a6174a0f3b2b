package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tilegen/internal/ports"
	"tilegen/internal/terrain"

	"gorm.io/gorm"
)

type mapRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Width       int    `gorm:"not null"`
	Height      int    `gorm:"not null"`
	Seed        int64  `gorm:"not null"`
	Params      []byte `gorm:"type:jsonb;not null"`
	PlainCount  int
	ForestCount int
	WaterCount  int
	Tiles       []byte    `gorm:"type:bytea"`
	CreatedAt   time.Time `gorm:"index"`
}

func (mapRow) TableName() string { return "tile_maps" }

type mapParams struct {
	Forest     terrain.ForestParams `json:"forest"`
	Water      terrain.WaterParams  `json:"water"`
	HeightMode terrain.HeightMode   `json:"height_mode"`
	TurnPolicy terrain.TurnPolicy   `json:"turn_policy"`
}

type MapRepo struct {
	db *gorm.DB
}

func NewMapRepo(db *gorm.DB) MapRepo {
	return MapRepo{db: db}
}

func (r MapRepo) Save(ctx context.Context, rec ports.MapRecord) (ports.MapRecord, error) {
	row, err := toMapRow(rec)
	if err != nil {
		return ports.MapRecord{}, err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.MapRecord{}, err
	}
	rec.ID = row.ID
	return rec, nil
}

func (r MapRepo) Get(ctx context.Context, id int64) (ports.MapRecord, error) {
	var row mapRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MapRecord{}, ports.ErrNotFound
		}
		return ports.MapRecord{}, err
	}
	return fromMapRow(row)
}

func (r MapRepo) List(ctx context.Context, limit int) ([]ports.MapRecord, error) {
	var rows []mapRow
	q := r.db.WithContext(ctx).Omit("tiles").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.MapRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := fromMapRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r MapRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&mapRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toMapRow(rec ports.MapRecord) (mapRow, error) {
	params, err := json.Marshal(mapParams{
		Forest:     rec.Forest,
		Water:      rec.Water,
		HeightMode: rec.HeightMode,
		TurnPolicy: rec.TurnPolicy,
	})
	if err != nil {
		return mapRow{}, err
	}
	return mapRow{
		Name:        rec.Name,
		Width:       rec.Width,
		Height:      rec.Height,
		Seed:        rec.Seed,
		Params:      params,
		PlainCount:  rec.Counts.Plain,
		ForestCount: rec.Counts.Forest,
		WaterCount:  rec.Counts.Water,
		Tiles:       rec.Tiles,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func fromMapRow(row mapRow) (ports.MapRecord, error) {
	var params mapParams
	if len(row.Params) > 0 {
		if err := json.Unmarshal(row.Params, &params); err != nil {
			return ports.MapRecord{}, err
		}
	}
	return ports.MapRecord{
		ID:         row.ID,
		Name:       row.Name,
		Width:      row.Width,
		Height:     row.Height,
		Seed:       row.Seed,
		Forest:     params.Forest,
		Water:      params.Water,
		HeightMode: params.HeightMode,
		TurnPolicy: params.TurnPolicy,
		Counts: terrain.TileCounts{
			Plain:  row.PlainCount,
			Forest: row.ForestCount,
			Water:  row.WaterCount,
		},
		Tiles:     row.Tiles,
		CreatedAt: row.CreatedAt,
	}, nil
}
