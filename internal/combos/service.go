package combos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/internal/pricing"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
)

const defaultFetchTimeout = 5 * time.Second

// ExpandedItem is one member product of a bundle.
type ExpandedItem struct {
	Product  *models.Product
	Quantity int
}

// Expansion describes the contents behind one combo cart line. DiscountText
// is display copy derived from the combo's location-specific terms; it does
// not feed the totals math.
type Expansion struct {
	Combo        *models.Combo
	Items        []ExpandedItem
	DiscountText string
}

// Service resolves combo cart lines into their bundle contents and serves
// the combo catalog reads.
type Service interface {
	Expand(ctx context.Context, lines []pricing.Line, isLocal bool) map[uuid.UUID]Expansion
	GetBySlug(ctx context.Context, slug string) (*models.Combo, error)
	List(ctx context.Context) ([]models.Combo, error)
}

type service struct {
	repo    ComboRepository
	logg    *logger.Logger
	timeout time.Duration
}

// NewService builds the expander on top of the combo repository.
func NewService(repo ComboRepository, logg *logger.Logger, timeout time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("combo repository required")
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &service{repo: repo, logg: logg, timeout: timeout}, nil
}

// Expand fetches the bundle definition for every combo-category line in the
// snapshot. All fetches run concurrently and the map is published only after
// every fetch settled; a failed or missing combo leaves its line without an
// entry and never fails the expansion of other lines.
func (s *service) Expand(ctx context.Context, lines []pricing.Line, isLocal bool) map[uuid.UUID]Expansion {
	comboLines := make([]pricing.Line, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil || !line.Product.Category.IsCombo() {
			continue
		}
		comboLines = append(comboLines, line)
	}
	if len(comboLines) == 0 {
		return map[uuid.UUID]Expansion{}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type fetchResult struct {
		productID uuid.UUID
		expansion *Expansion
		err       error
	}

	results := make([]fetchResult, len(comboLines))
	g, gctx := errgroup.WithContext(fetchCtx)
	for i, line := range comboLines {
		i, line := i, line
		g.Go(func() error {
			combo, err := s.repo.FindActiveBySlug(gctx, line.Product.Slug)
			if err != nil {
				// Failures stay per-line; the gather itself never errors.
				results[i] = fetchResult{productID: line.Product.ID, err: err}
				return nil
			}

			items := make([]ExpandedItem, 0, len(combo.Items))
			for idx := range combo.Items {
				items = append(items, ExpandedItem{
					Product:  combo.Items[idx].Product,
					Quantity: combo.Items[idx].Quantity,
				})
			}

			results[i] = fetchResult{
				productID: line.Product.ID,
				expansion: &Expansion{
					Combo:        combo,
					Items:        items,
					DiscountText: DiscountText(combo, isLocal),
				},
			}
			return nil
		})
	}
	_ = g.Wait()

	expansions := make(map[uuid.UUID]Expansion, len(results))
	for _, res := range results {
		if res.err != nil {
			if s.logg != nil {
				lctx := s.logg.WithField(ctx, "product_id", res.productID.String())
				s.logg.Warn(lctx, "combo expansion skipped: lookup failed")
			}
			continue
		}
		if res.expansion != nil {
			expansions[res.productID] = *res.expansion
		}
	}
	return expansions
}

// GetBySlug returns the active combo behind a catalog slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Combo, error) {
	combo, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load combo")
	}
	return combo, nil
}

// List returns all active combos with their items.
func (s *service) List(ctx context.Context) ([]models.Combo, error) {
	out, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list combos")
	}
	return out, nil
}

// DiscountText derives the informational label for a combo's discount terms.
// The location flag selects the local or national terms; a percentage takes
// precedence over a flat amount when both are set.
func DiscountText(combo *models.Combo, isLocal bool) string {
	if combo == nil {
		return ""
	}

	percentage := combo.DiscountPercentageNational
	amount := combo.DiscountAmountNationalCents
	if isLocal {
		percentage = combo.DiscountPercentageLocal
		amount = combo.DiscountAmountLocalCents
	}

	switch {
	case percentage > 0:
		return fmt.Sprintf("%d%% off", percentage)
	case amount > 0:
		return fmt.Sprintf("$%d.%02d off", amount/100, amount%100)
	default:
		return ""
	}
}
