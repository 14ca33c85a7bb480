// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lithoform/lithoform/pkg/api"
	"github.com/lithoform/lithoform/pkg/catalog"
	"github.com/lithoform/lithoform/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	modelsSearch   string
	modelsPage     int
	modelsFeatured bool

	uploadName        string
	uploadDescription string
	uploadFiles       []string
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Browse the public model catalog",
	RunE:  runModelsList,
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <model-id>",
	Short: "Show one model",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsShow,
}

var modelsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own uploaded models, drafts included",
	RunE:  runModelsMine,
}

var modelsUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a new model draft",
	RunE:  runModelsUpload,
}

var modelsSubmitCmd = &cobra.Command{
	Use:   "submit <model-id>",
	Short: "Submit a draft model for review",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsSubmit,
}

var modelsLogsCmd = &cobra.Command{
	Use:   "review-logs <model-id>",
	Short: "Show a model's review history",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsLogs,
}

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List printable materials",
	RunE:  runMaterialsList,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	modelsCmd.Flags().StringVarP(&modelsSearch, "search", "s", "", "Search by name or description")
	modelsCmd.Flags().IntVar(&modelsPage, "page", 0, "Page number")
	modelsCmd.Flags().BoolVar(&modelsFeatured, "featured", false, "Featured models only")

	modelsUploadCmd.Flags().StringVar(&uploadName, "name", "", "Model name")
	modelsUploadCmd.Flags().StringVar(&uploadDescription, "description", "", "Model description")
	modelsUploadCmd.Flags().StringArrayVarP(&uploadFiles, "file", "f", nil,
		"Model file to upload (repeatable)")
	_ = modelsUploadCmd.MarkFlagRequired("name")
	_ = modelsUploadCmd.MarkFlagRequired("file")

	modelsCmd.AddCommand(modelsShowCmd)
	modelsCmd.AddCommand(modelsMineCmd)
	modelsCmd.AddCommand(modelsUploadCmd)
	modelsCmd.AddCommand(modelsSubmitCmd)
	modelsCmd.AddCommand(modelsLogsCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runModelsList(cmd *cobra.Command, args []string) error {
	env, err := appCtx.Models.Browse(cmd.Context(), catalog.BrowseOptions{
		Search:       modelsSearch,
		Page:         modelsPage,
		FeaturedOnly: modelsFeatured,
	})
	if err != nil {
		return err
	}

	if len(env.Items) == 0 {
		ux.Muted("no models found")
		return nil
	}
	for _, m := range env.Items {
		printModel(m)
	}
	if env.Kind == api.KindPage && env.Count > len(env.Items) {
		ux.Muted(fmt.Sprintf("showing %d of %d models (--page to browse)", len(env.Items), env.Count))
	}
	return nil
}

func runModelsShow(cmd *cobra.Command, args []string) error {
	model, err := appCtx.Models.Get(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return err
	}
	printModel(*model)
	ux.KeyValue("status", model.Status)
	return nil
}

func runModelsMine(cmd *cobra.Command, args []string) error {
	models, err := appCtx.Models.Mine(cmd.Context())
	if err != nil {
		return err
	}
	if len(models) == 0 {
		ux.Muted("no uploads yet")
		return nil
	}
	for _, m := range models {
		ux.LineStatus(ux.IconLayer, m.Name, m.Status)
	}
	return nil
}

func runModelsUpload(cmd *cobra.Command, args []string) error {
	var files []api.FormFile
	for _, path := range uploadFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read model file: %w", err)
		}
		files = append(files, api.FormFile{
			Field:   "model_file",
			Name:    filepath.Base(path),
			Content: data,
		})
	}

	fields := map[string]string{"name": uploadName}
	if uploadDescription != "" {
		fields["description"] = uploadDescription
	}

	var model *api.Model
	err := ux.WithSpinner("uploading model", func() error {
		var uploadErr error
		model, uploadErr = appCtx.Models.Upload(cmd.Context(), fields, files)
		return uploadErr
	})
	if err != nil {
		return err
	}
	ux.KeyValue("id", model.ID.String())
	ux.KeyValue("status", model.Status)
	return nil
}

func runModelsSubmit(cmd *cobra.Command, args []string) error {
	model, err := appCtx.Models.SubmitForReview(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return err
	}
	ux.Success(fmt.Sprintf("%s submitted for review", model.Name))
	return nil
}

func runModelsLogs(cmd *cobra.Command, args []string) error {
	logs, err := appCtx.Models.ReviewLogs(cmd.Context(), api.ID(args[0]))
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		ux.Muted("no review activity yet")
		return nil
	}
	for _, entry := range logs {
		ux.LineStatus(ux.IconBullet, entry.Status, entry.Comment)
	}
	return nil
}

func runMaterialsList(cmd *cobra.Command, args []string) error {
	if err := appCtx.Materials.Refresh(cmd.Context()); err != nil {
		ux.Warning("material list may be stale: " + err.Error())
	}
	for _, m := range appCtx.Materials.Active() {
		ux.LineStatus(ux.IconBullet, m.Name,
			fmt.Sprintf("%s, %.2f/g", m.ID, m.PricePerGram.Float64()))
	}
	return nil
}
