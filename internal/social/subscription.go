package social

import (
	"context"
	"errors"

	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// ValidateSubscription implements Subscribe/SubscribePrivate/Unsubscribe
// (spec.md §4.5): from must not equal to; Subscribe is rejected if an
// active subscription already exists; Unsubscribe is rejected if none
// does. A Subscribe immediately after an Unsubscribe in the same block is
// allowed because block validation reads the store after each prior
// same-block row has already been committed in order.
func (e *Engine) ValidateSubscription(ctx context.Context, sub models.Subscription) (consensus.Code, error) {
	if sub.From == sub.To {
		return consensus.SelfSubscribe, nil
	}

	current, err := e.Store.CurrentSubscription(ctx, sub.From, sub.To)
	notFound := errors.Is(err, store.ErrNotFound)
	if err != nil && !notFound {
		return consensus.Failed, err
	}

	isActive := !notFound && current.Kind != models.KindUnsubscribe

	switch sub.Kind {
	case models.KindSubscribe, models.KindSubscribePrivate:
		if isActive {
			return consensus.DoubleSubscribe, nil
		}
	case models.KindUnsubscribe:
		if !isActive {
			return consensus.NotFound, nil
		}
	}
	return consensus.Success, nil
}

// ValidateBlocking implements Block/Unblock (spec.md §4.5), symmetric to
// ValidateSubscription. A block at this height retroactively disables
// this pair's subsequent score→reputation propagation; enforcing that is
// the Chain Post-Processor's job (internal/chain), not this check.
func (e *Engine) ValidateBlocking(ctx context.Context, b models.Blocking) (consensus.Code, error) {
	if b.From == b.To {
		return consensus.SelfBlocking, nil
	}

	current, err := e.Store.CurrentBlocking(ctx, b.From, b.To)
	notFound := errors.Is(err, store.ErrNotFound)
	if err != nil && !notFound {
		return consensus.Failed, err
	}

	isActive := !notFound && current.Kind == models.KindBlock

	switch b.Kind {
	case models.KindBlock:
		if isActive {
			return consensus.DoubleBlocking, nil
		}
	case models.KindUnblock:
		if !isActive {
			return consensus.NotFound, nil
		}
	}
	return consensus.Success, nil
}
