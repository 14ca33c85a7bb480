// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cart

import (
	"context"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/logging"
)

// Reconciler migrates guest lines into the remote cart.
//
// It runs exactly once per successful authentication transition,
// never at startup and never periodically; the session layer owns
// the trigger.
type Reconciler struct {
	client *api.Client
	guest  *Guest
	mirror *Mirror
	log    *logging.Logger
}

// NewReconciler wires a reconciler over the guest buffer and mirror.
func NewReconciler(client *api.Client, guest *Guest, mirror *Mirror, log *logging.Logger) *Reconciler {
	if log == nil {
		log = logging.Default()
	}
	return &Reconciler{client: client, guest: guest, mirror: mirror, log: log}
}

// MergeLocalIntoRemote submits every guest line as an independent
// merge-add request, in buffer order.
//
// A failed line is logged and skipped; the remaining lines are still
// attempted. There is no rollback and no retry. After the pass the
// guest buffer is cleared unconditionally, dropping any lines that
// failed to merge, and the mirror is refreshed so the merged cart
// becomes the active one.
func (r *Reconciler) MergeLocalIntoRemote(ctx context.Context) {
	lines := r.guest.Lines()
	if len(lines) > 0 {
		for _, line := range lines {
			err := r.client.MergeAddCartItem(ctx, line.ModelID, line.MaterialID, line.Quantity)
			if err != nil {
				mergeLines.WithLabelValues("error").Inc()
				r.log.Warn("cart merge line failed",
					"model_id", line.ModelID.String(),
					"material_id", line.MaterialID.String(),
					"error", err)
				continue
			}
			mergeLines.WithLabelValues("ok").Inc()
		}
		r.guest.Clear()
	}

	if err := r.mirror.Refresh(ctx); err != nil {
		r.log.Warn("cart refresh after merge failed", "error", err)
	}
}
