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

	"github.com/spf13/cobra"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/cart"
	"github.com/lithoform/lithoform/pkg/ux"
	"github.com/lithoform/lithoform/pkg/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	cartAddMaterial string
	cartAddQuantity int
	cartAddNotes    string
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// cartCmd shows the active cart: the guest buffer before login, the
// account cart after.
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit your cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <model-id>",
	Short: "Add a model to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <line-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartQuantityCmd = &cobra.Command{
	Use:   "quantity <line-id> <count>",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartQuantity,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	cartAddCmd.Flags().StringVarP(&cartAddMaterial, "material", "m", "",
		"Material id (see materials)")
	cartAddCmd.Flags().IntVarP(&cartAddQuantity, "quantity", "q", 1, "Number of prints")
	cartAddCmd.Flags().StringVar(&cartAddNotes, "notes", "", "Print notes for this line")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQuantityCmd)
	cartCmd.AddCommand(cartClearCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runCartShow(cmd *cobra.Command, args []string) error {
	if err := appCtx.RefreshCart(cmd.Context()); err != nil {
		ux.Warning("cart refresh failed: " + err.Error())
	}
	printCart()
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := validation.ValidateQuantity(cartAddQuantity); err != nil {
		return err
	}

	modelID := api.ID(args[0])

	// Resolve display fields so a guest cart shows names and prices
	// without a server round trip per read.
	sel := cart.Selection{
		ModelID:    modelID,
		MaterialID: api.ID(cartAddMaterial),
		Notes:      cartAddNotes,
	}
	if model, err := appCtx.Models.Get(ctx, modelID); err == nil {
		sel.ModelName = model.Name
		sel.UnitPrice = model.Price.Float64()
	}
	if cartAddMaterial != "" {
		if material, ok := appCtx.Materials.Get(api.ID(cartAddMaterial)); ok {
			sel.MaterialName = material.Name
		}
	}

	if err := appCtx.AddToCart(ctx, sel, cartAddQuantity); err != nil {
		return err
	}
	printCart()
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	id, err := parseLineID(args[0])
	if err != nil {
		return err
	}
	if err := appCtx.RemoveFromCart(cmd.Context(), id); err != nil {
		return err
	}
	printCart()
	return nil
}

func runCartQuantity(cmd *cobra.Command, args []string) error {
	id, err := parseLineID(args[0])
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	if err := validation.ValidateQuantity(quantity); err != nil {
		return err
	}
	if err := appCtx.SetCartQuantity(cmd.Context(), id, quantity); err != nil {
		return err
	}
	printCart()
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	if err := appCtx.ClearCart(cmd.Context()); err != nil {
		return err
	}
	ux.Success("cart cleared")
	return nil
}
