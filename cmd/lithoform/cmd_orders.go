// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/ux"
	"github.com/lithoform/lithoform/pkg/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	ordersOpenOnly      bool
	ordersCompletedOnly bool

	placeAddress string
	placeNotes   string
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List and manage your print orders",
	RunE:  runOrdersList,
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersShow,
}

var ordersPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order for everything in your cart",
	RunE:  runOrdersPlace,
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersCancel,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	ordersCmd.Flags().BoolVar(&ordersOpenOnly, "open", false, "Open orders only")
	ordersCmd.Flags().BoolVar(&ordersCompletedOnly, "completed", false, "Completed orders only")

	ordersPlaceCmd.Flags().StringVarP(&placeAddress, "address", "a", "", "Shipping address")
	ordersPlaceCmd.Flags().StringVar(&placeNotes, "notes", "", "Order notes")
	_ = ordersPlaceCmd.MarkFlagRequired("address")

	ordersCmd.AddCommand(ordersShowCmd)
	ordersCmd.AddCommand(ordersPlaceCmd)
	ordersCmd.AddCommand(ordersCancelCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runOrdersList(cmd *cobra.Command, args []string) error {
	if !appCtx.Session.Authenticated() {
		ux.Muted("sign in to see your orders")
		return nil
	}
	if err := appCtx.Orders.Refresh(cmd.Context()); err != nil {
		return err
	}

	var orders []api.Order
	switch {
	case ordersOpenOnly:
		orders = appCtx.Orders.Open()
	case ordersCompletedOnly:
		orders = appCtx.Orders.Completed()
	default:
		orders = appCtx.Orders.All()
	}
	if len(orders) == 0 {
		ux.Muted("no orders")
		return nil
	}
	for _, o := range orders {
		ux.LineStatus(ux.IconLayer, o.ID.String(),
			fmt.Sprintf("%s, %.2f", o.Status, o.TotalPrice.Float64()))
	}
	return nil
}

func runOrdersShow(cmd *cobra.Command, args []string) error {
	order, err := appCtx.Orders.Get(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func runOrdersPlace(cmd *cobra.Command, args []string) error {
	if err := validation.ValidateShippingAddress(placeAddress); err != nil {
		return err
	}

	var order *api.Order
	err := ux.WithSpinner("placing order", func() error {
		var placeErr error
		order, placeErr = appCtx.Orders.Place(cmd.Context(), api.OrderRequest{
			ShippingAddress: placeAddress,
			Notes:           placeNotes,
		})
		return placeErr
	})
	if err != nil {
		return err
	}

	// Ordering consumes the server-side cart.
	if err := appCtx.RefreshCart(cmd.Context()); err != nil {
		ux.Warning("cart refresh failed: " + err.Error())
	}

	ux.Success("order placed")
	printOrder(order)
	return nil
}

func runOrdersCancel(cmd *cobra.Command, args []string) error {
	order, err := appCtx.Orders.Cancel(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return err
	}
	ux.Success(fmt.Sprintf("order %s cancelled", order.ID))
	return nil
}
