// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/cart"
	"github.com/lithoform/lithoform/pkg/ux"
)

// parseLineID maps a user-facing line identifier back to its tagged
// form. Guest lines print as "local-<n>"; everything else is a
// server row id.
func parseLineID(s string) (cart.LineID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return cart.LineID{}, fmt.Errorf("line id cannot be empty")
	}
	if rest, ok := strings.CutPrefix(s, "local-"); ok {
		seq, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return cart.LineID{}, fmt.Errorf("invalid local line id %q", s)
		}
		return cart.LocalLineID(seq), nil
	}
	return cart.RemoteLineID(api.ID(s)), nil
}

// lineLabel renders one cart line for display.
func lineLabel(line cart.Line) string {
	name := line.ModelName
	if name == "" {
		name = line.ModelID.String()
	}
	if line.MaterialName != "" {
		name += " / " + line.MaterialName
	}
	return fmt.Sprintf("%s  x%d  @%.2f", name, line.Quantity, line.UnitPrice)
}

// printCart renders the active cart with totals.
func printCart() {
	if appCtx.CartUnavailable() {
		ux.Warning("cart is currently unavailable; showing nothing rather than guessing")
		return
	}

	lines := appCtx.CartLines()
	if len(lines) == 0 {
		ux.Muted("cart is empty")
		return
	}
	for _, line := range lines {
		ux.LineStatus(ux.IconCart, lineLabel(line), line.ID.String())
	}
	snap := appCtx.CartSummary()
	ux.Totals(snap.ItemCount, snap.Subtotal, snap.Total)
}

// printOrder renders one order with its lines.
func printOrder(order *api.Order) {
	icon := ux.IconPending
	switch order.Status {
	case api.OrderStatusDelivered:
		icon = ux.IconSuccess
	case api.OrderStatusCancelled:
		icon = ux.IconError
	}
	ux.LineStatus(icon, fmt.Sprintf("order %s", order.ID), order.Status)
	for _, item := range order.Items {
		label := item.ModelName
		if item.MaterialName != "" {
			label += " / " + item.MaterialName
		}
		ux.Info(fmt.Sprintf("  %s x%d @%.2f", label, item.Quantity, item.UnitPrice.Float64()))
	}
	ux.KeyValue("total", fmt.Sprintf("%.2f", order.TotalPrice.Float64()))
	if order.ShippingAddress != "" {
		ux.KeyValue("ship to", order.ShippingAddress)
	}
}

// printModel renders one catalog model.
func printModel(m api.Model) {
	ux.LineStatus(ux.IconLayer, fmt.Sprintf("%s  @%.2f", m.Name, m.Price.Float64()), m.ID.String())
	if m.Description != "" {
		ux.Muted("  " + m.Description)
	}
}
