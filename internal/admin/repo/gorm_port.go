// Copyright 2025 CrowdKit Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"context"
	"errors"
	"sort"

	"github.com/crowdkit/crowdkit/internal/admin/errs"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormPort adapts Port to a relational database through gorm. Relies on
// gorm.Config.TranslateError so duplicate-key violations arrive as
// gorm.ErrDuplicatedKey for every supported SQL driver.
type GormPort[T any] struct {
	db *gorm.DB
}

func NewGormPort[T any](db *gorm.DB) *GormPort[T] {
	return &GormPort[T]{db: db}
}

func (p *GormPort[T]) Insert(ctx context.Context, record *T) error {
	if err := p.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateGormErr(err, "insert")
	}
	return nil
}

func (p *GormPort[T]) InsertMany(ctx context.Context, records []*T) error {
	if len(records) == 0 {
		return nil
	}
	if err := p.db.WithContext(ctx).Create(records).Error; err != nil {
		return translateGormErr(err, "insert many")
	}
	return nil
}

func (p *GormPort[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var record T
	err := p.db.WithContext(ctx).Where(map[string]any(filter)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find one")
	}
	return &record, nil
}

func (p *GormPort[T]) Find(ctx context.Context, filter Filter, opts Options) ([]*T, error) {
	var records []*T
	if err := p.query(ctx, filter, opts).Find(&records).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "find")
	}
	return records, nil
}

func (p *GormPort[T]) FindPage(ctx context.Context, filter Filter, opts Options) (*PageResult[T], error) {
	total, err := p.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	records, err := p.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return &PageResult[T]{Items: records, Pagination: NewPagination(opts.Skip, opts.Limit, total)}, nil
}

func (p *GormPort[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var record T
	var total int64
	err := p.db.WithContext(ctx).Model(&record).Where(map[string]any(filter)).Count(&total).Error
	if err != nil {
		return 0, pkgerrors.Wrap(err, "count")
	}
	return total, nil
}

func (p *GormPort[T]) Exists(ctx context.Context, filter Filter) (bool, error) {
	total, err := p.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (p *GormPort[T]) Update(ctx context.Context, filter Filter, fields map[string]any) (int64, error) {
	var record T
	tx := p.db.WithContext(ctx).Model(&record).Where(map[string]any(filter)).Updates(fields)
	if tx.Error != nil {
		return 0, translateGormErr(tx.Error, "update")
	}
	return tx.RowsAffected, nil
}

func (p *GormPort[T]) Increment(ctx context.Context, filter Filter, field string, delta int) (int64, error) {
	var record T
	tx := p.db.WithContext(ctx).Model(&record).Where(map[string]any(filter)).
		UpdateColumn(field, gorm.Expr(field+" + ?", delta))
	if tx.Error != nil {
		return 0, pkgerrors.Wrap(tx.Error, "increment")
	}
	return tx.RowsAffected, nil
}

func (p *GormPort[T]) Distinct(ctx context.Context, field string, filter Filter) ([]string, error) {
	var record T
	var values []string
	err := p.db.WithContext(ctx).Model(&record).Where(map[string]any(filter)).
		Distinct(field).Order(field).Pluck(field, &values).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "distinct")
	}
	return values, nil
}

func (p *GormPort[T]) Delete(ctx context.Context, filter Filter) (int64, error) {
	var record T
	tx := p.db.WithContext(ctx).Where(map[string]any(filter)).Delete(&record)
	if tx.Error != nil {
		return 0, pkgerrors.Wrap(tx.Error, "delete")
	}
	return tx.RowsAffected, nil
}

func (p *GormPort[T]) query(ctx context.Context, filter Filter, opts Options) *gorm.DB {
	var record T
	tx := p.db.WithContext(ctx).Model(&record).Where(map[string]any(filter))
	if len(opts.Select) > 0 {
		tx = tx.Select(opts.Select)
	}
	// Iterate sorted keys so the generated SQL is stable.
	fields := make([]string, 0, len(opts.Sort))
	for field := range opts.Sort {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if opts.Sort[field] < 0 {
			tx = tx.Order(field + " DESC")
		} else {
			tx = tx.Order(field + " ASC")
		}
	}
	if opts.Skip > 0 {
		tx = tx.Offset(int(opts.Skip))
	}
	if opts.Limit > 0 {
		tx = tx.Limit(int(opts.Limit))
	}
	return tx
}

func translateGormErr(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Wrap(errs.KindConflict, err, "%s: duplicate key", op)
	}
	return pkgerrors.Wrap(err, op)
}
