package cart

import (
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	"github.com/google/uuid"
)

// Classified partitions a flat item list into the three line item shapes.
// Bucket order follows list order, and orphan add-on buckets (parent id
// absent from the main items) are kept so callers can ignore them
// gracefully instead of blowing up.
type Classified struct {
	MainItems      []LineItem
	AddonsByParent map[uuid.UUID][]LineItem
	CustomItems    []LineItem

	parentOrder []uuid.UUID
}

// Classify partitions items by their effective kind. The function is pure
// and idempotent: classifying the flattened result yields the same buckets.
func Classify(items []LineItem) Classified {
	out := Classified{
		AddonsByParent: make(map[uuid.UUID][]LineItem),
	}
	for _, item := range items {
		switch item.EffectiveKind() {
		case enums.LineItemKindAddon:
			parentID := uuid.Nil
			if item.ParentItemID != nil {
				parentID = *item.ParentItemID
			}
			if _, seen := out.AddonsByParent[parentID]; !seen {
				out.parentOrder = append(out.parentOrder, parentID)
			}
			out.AddonsByParent[parentID] = append(out.AddonsByParent[parentID], item)
		case enums.LineItemKindCustom:
			out.CustomItems = append(out.CustomItems, item)
		default:
			out.MainItems = append(out.MainItems, item)
		}
	}
	return out
}

// AddonsFor returns the add-on bucket for the given main item id.
func (c Classified) AddonsFor(parentID uuid.UUID) []LineItem {
	return c.AddonsByParent[parentID]
}

// OrphanAddons returns every add-on whose parent is not a main item, in
// first-seen bucket order.
func (c Classified) OrphanAddons() []LineItem {
	mains := make(map[uuid.UUID]struct{}, len(c.MainItems))
	for _, main := range c.MainItems {
		mains[main.ID] = struct{}{}
	}
	var orphans []LineItem
	for _, parentID := range c.parentOrder {
		if _, ok := mains[parentID]; ok {
			continue
		}
		orphans = append(orphans, c.AddonsByParent[parentID]...)
	}
	return orphans
}

// Flatten rebuilds a flat item list: main items each followed by their
// add-ons, then custom items, then orphan add-on buckets. Classifying the
// result reproduces the same partition.
func (c Classified) Flatten() []LineItem {
	var flat []LineItem
	for _, main := range c.MainItems {
		flat = append(flat, main)
		flat = append(flat, c.AddonsByParent[main.ID]...)
	}
	flat = append(flat, c.CustomItems...)
	flat = append(flat, c.OrphanAddons()...)
	return flat
}
