package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"

	"github.com/bazaarline/importer/internal/core/port"
)

var _ port.CategoryCounts = (*CategoryCountsView)(nil)

// A CategoryCountsView reads the category-counts group table.
type CategoryCountsView struct {
	gv *goka.View
}

func NewCategoryCountsView(
	seedBrokers []string, groupTable string,
) (*CategoryCountsView, error) {
	const op = "NewCategoryCountsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		countValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &CategoryCountsView{gv}, nil
}

func (v *CategoryCountsView) Run(ctx context.Context) {
	const op = "CategoryCountsView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Count reports how many imports the category has seen. Unknown
// categories count zero.
func (v *CategoryCountsView) Count(category string) (int64, error) {
	const op = "CategoryCountsView.Count"

	val, err := v.gv.Get(category)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	cv, ok := val.(countValue)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(cv), nil
}
