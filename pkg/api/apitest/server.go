// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package apitest provides an in-memory fake Print API for tests.
//
// The fake speaks the same wire dialect as the production API: token
// header auth, DRF-style error payloads, and both list shapes (bare
// array and paginated object) switchable per server. Tests drive the
// real client against it instead of stubbing transport internals.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MergeCall records one merge-add request, for asserting on
// reconciliation traffic.
type MergeCall struct {
	ModelID    string
	MaterialID string
	Quantity   int
}

// userRecord is one registered account.
type userRecord struct {
	Email       string
	Password    string
	DisplayName string
	AvatarType  string
	AvatarURL   string
	Role        string
	IsEmployee  bool
	IsAdmin     bool
	ID          int
}

// cartRow is one server-side cart row.
type cartRow struct {
	ID           int
	ModelID      string
	ModelName    string
	MaterialID   string
	MaterialName string
	Quantity     int
	UnitPrice    float64
	Notes        string
}

// modelRecord is one catalog entry.
type modelRecord struct {
	ID        string
	Name      string
	Price     float64
	Status    string
	IsPublic  bool
	Owner     string
	Featured  bool
	CreatedAt time.Time
}

// materialRecord is one printable material.
type materialRecord struct {
	ID       string
	Name     string
	PriceG   float64
	IsActive bool
}

// orderRecord is one placed order.
type orderRecord struct {
	ID      int
	Owner   string
	Status  string
	Total   float64
	Address string
	Items   []cartRow
	Created time.Time
}

// Server is the fake Print API.
//
// Zero-configuration: New() starts an empty server; seed state with
// the Seed* helpers. All exported methods are safe for concurrent use.
type Server struct {
	mu sync.Mutex

	httpSrv *httptest.Server

	// Paginated switches list responses from bare arrays to the
	// paginated object shape.
	Paginated bool

	users      map[string]*userRecord // by email
	tokens     map[string]string      // token -> email
	external   map[string]string      // id_token -> email
	carts      map[string][]cartRow   // by email
	models     []modelRecord
	materials  []materialRecord
	orders     map[string][]orderRecord
	failures   map[string]int // "METHOD /full/path" -> status
	mergeCalls []MergeCall

	nextUserID  int
	nextCartID  int
	nextOrderID int
}

// New starts a fake Print API on an ephemeral port.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:    make(map[string]*userRecord),
		tokens:   make(map[string]string),
		external: make(map[string]string),
		carts:    make(map[string][]cartRow),
		orders:   make(map[string][]orderRecord),
		failures: make(map[string]int),
	}

	r := gin.New()
	r.Use(s.failureMiddleware)

	r.POST("/api/auth/login/", s.handleLogin)
	r.POST("/api/auth/google/", s.handleExternalLogin)
	r.POST("/api/auth/registration/", s.handleRegistration)
	r.GET("/api/auth/me/", s.authed(s.handleMe))
	r.PATCH("/api/auth/profile/", s.authed(s.handleProfileUpdate))
	r.GET("/api/auth/avatar/choices/", s.authed(s.handleAvatarChoices))
	r.PATCH("/api/auth/avatar/", s.authed(s.handleAvatarUpdate))

	r.GET("/api/cart/", s.authed(s.handleCartList))
	r.POST("/api/cart/", s.authed(s.handleCartCreate))
	r.POST("/api/cart/add_to_cart/", s.authed(s.handleCartMergeAdd))
	r.DELETE("/api/cart/:id/", s.authed(s.handleCartDelete))
	r.POST("/api/cart/:id/update_quantity/", s.authed(s.handleCartQuantity))

	r.GET("/api/materials/", s.handleMaterials)

	r.GET("/api/public-models/", s.handlePublicModels)
	r.GET("/api/public-models/:id/", s.handlePublicModel)
	r.GET("/api/models/my_models/", s.authed(s.handleMyModels))
	r.GET("/api/models/:id/", s.authed(s.handleModel))
	r.POST("/api/models/", s.authed(s.handleModelCreate))
	r.PATCH("/api/models/:id/", s.authed(s.handleModelUpdate))
	r.DELETE("/api/models/:id/", s.authed(s.handleModelDelete))
	r.POST("/api/models/:id/submit_for_review/", s.authed(s.handleModelSubmit))
	r.GET("/api/models/:id/review_logs/", s.authed(s.handleReviewLogs))
	r.POST("/api/models/:id/upload_images/", s.authed(s.handleUploadImages))

	r.GET("/api/orders/", s.authed(s.handleOrderList))
	r.POST("/api/orders/", s.authed(s.handleOrderCreate))
	r.GET("/api/orders/:id/", s.authed(s.handleOrder))
	r.POST("/api/orders/:id/cancel/", s.authed(s.handleOrderCancel))

	s.httpSrv = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string { return s.httpSrv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.httpSrv.Close() }

// =============================================================================
// Seeding and Inspection
// =============================================================================

// SeedUser registers an account and returns nothing; log in through
// the client to obtain a token.
func (s *Server) SeedUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	s.users[email] = &userRecord{
		Email:    email,
		Password: password,
		Role:     "customer",
		ID:       s.nextUserID,
	}
}

// SeedExternalIdentity maps an external id_token onto an account,
// creating the account if needed.
func (s *Server) SeedExternalIdentity(idToken, email string) {
	s.mu.Lock()
	if _, ok := s.users[email]; !ok {
		s.nextUserID++
		s.users[email] = &userRecord{Email: email, Role: "customer", ID: s.nextUserID}
	}
	s.external[idToken] = email
	s.mu.Unlock()
}

// SeedMaterial adds one printable material.
func (s *Server) SeedMaterial(id, name string, pricePerGram float64) {
	s.mu.Lock()
	s.materials = append(s.materials, materialRecord{ID: id, Name: name, PriceG: pricePerGram, IsActive: true})
	s.mu.Unlock()
}

// SeedModel adds one public model with the given unit price.
func (s *Server) SeedModel(id, name string, price float64) {
	s.mu.Lock()
	s.models = append(s.models, modelRecord{ID: id, Name: name, Price: price, Status: "APPROVED", IsPublic: true, CreatedAt: time.Now().UTC()})
	s.mu.Unlock()
}

// SeedModelAt adds one public model with an explicit creation time
// and featured flag.
func (s *Server) SeedModelAt(id, name string, price float64, featured bool, createdAt time.Time) {
	s.mu.Lock()
	s.models = append(s.models, modelRecord{ID: id, Name: name, Price: price, Status: "APPROVED", IsPublic: true, Featured: featured, CreatedAt: createdAt})
	s.mu.Unlock()
}

// CartRows returns a copy of a user's cart rows as (modelID,
// materialID, quantity) triples in server order.
func (s *Server) CartRows(email string) []MergeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []MergeCall
	for _, row := range s.carts[email] {
		out = append(out, MergeCall{ModelID: row.ModelID, MaterialID: row.MaterialID, Quantity: row.Quantity})
	}
	return out
}

// MergeCalls returns every merge-add request received so far.
func (s *Server) MergeCalls() []MergeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MergeCall, len(s.mergeCalls))
	copy(out, s.mergeCalls)
	return out
}

// FailWith injects a failure: the next requests to METHOD path answer
// with the given status until ClearFailures is called. path is the
// route pattern, e.g. "GET /api/cart/".
func (s *Server) FailWith(method, path string, status int) {
	s.mu.Lock()
	s.failures[method+" "+path] = status
	s.mu.Unlock()
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	s.failures = make(map[string]int)
	s.mu.Unlock()
}

// =============================================================================
// Middleware
// =============================================================================

func (s *Server) failureMiddleware(c *gin.Context) {
	s.mu.Lock()
	status, ok := s.failures[c.Request.Method+" "+c.FullPath()]
	s.mu.Unlock()
	if ok {
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

// authed wraps a handler with token-header authentication.
func (s *Server) authed(fn func(*gin.Context, *userRecord)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Token "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		s.mu.Lock()
		email, ok := s.tokens[header[len(prefix):]]
		user := s.users[email]
		s.mu.Unlock()
		if !ok || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		fn(c, user)
	}
}

// respondList answers with either wire shape per s.Paginated.
func (s *Server) respondList(c *gin.Context, items any, count int) {
	if s.Paginated {
		c.JSON(http.StatusOK, gin.H{
			"count":    count,
			"next":     nil,
			"previous": nil,
			"results":  items,
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// =============================================================================
// Auth Handlers
// =============================================================================

func (s *Server) issueToken(email string) string {
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Invalid request body."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[req.Email]
	if !ok || user.Password != req.Password {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Unable to log in with provided credentials."}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key": s.issueToken(req.Email),
		"user": gin.H{
			"pk":    user.ID,
			"email": user.Email,
		},
	})
}

func (s *Server) handleExternalLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.external[req.IDToken]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "External sign-in failed"})
		return
	}
	user := s.users[email]
	c.JSON(http.StatusOK, gin.H{
		"key": s.issueToken(email),
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"role":          user.Role,
			"auth_provider": "google",
		},
	})
}

func (s *Server) handleRegistration(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Password1 string `json:"password1"`
		Password2 string `json:"password2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Invalid request body."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"A user with that email already exists."}})
		return
	}
	if req.Password1 != req.Password2 {
		c.JSON(http.StatusBadRequest, gin.H{"password2": []string{"The two password fields didn't match."}})
		return
	}
	s.nextUserID++
	s.users[req.Email] = &userRecord{
		Email:    req.Email,
		Password: req.Password1,
		Role:     "customer",
		ID:       s.nextUserID,
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "Verification e-mail sent."})
}

func (s *Server) userJSON(u *userRecord) gin.H {
	return gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"display_name": u.DisplayName,
		"avatar_type":  u.AvatarType,
		"avatar_url":   u.AvatarURL,
		"role":         u.Role,
		"is_employee":  u.IsEmployee,
		"is_admin":     u.IsAdmin,
	}
}

func (s *Server) handleMe(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.userJSON(user))
}

func (s *Server) handleProfileUpdate(c *gin.Context, user *userRecord) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user.DisplayName = req.DisplayName
	c.JSON(http.StatusOK, s.userJSON(user))
}

func (s *Server) handleAvatarChoices(c *gin.Context, _ *userRecord) {
	s.respondList(c, []gin.H{
		{"kind": "default", "label": "Default", "url": ""},
		{"kind": "maker", "label": "Maker", "url": "/static/avatars/maker.png"},
	}, 2)
}

func (s *Server) handleAvatarUpdate(c *gin.Context, user *userRecord) {
	kind := c.PostForm("avatar_type")
	if kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "avatar_type is required."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user.AvatarType = kind
	if _, err := c.FormFile("avatar_image"); err == nil {
		user.AvatarURL = "/media/avatars/" + strconv.Itoa(user.ID) + ".png"
	}
	c.JSON(http.StatusOK, s.userJSON(user))
}

// =============================================================================
// Cart Handlers
// =============================================================================

func (s *Server) cartRowJSON(row cartRow) gin.H {
	return gin.H{
		"id":              row.ID,
		"model":           row.ModelID,
		"model_name":      row.ModelName,
		"material":        row.MaterialID,
		"material_name":   row.MaterialName,
		"quantity":        row.Quantity,
		"estimated_price": fmt.Sprintf("%.2f", row.UnitPrice),
		"material_price":  fmt.Sprintf("%.2f", row.UnitPrice),
		"notes":           row.Notes,
	}
}

func (s *Server) handleCartList(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.carts[user.Email]
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.cartRowJSON(row))
	}
	s.respondList(c, out, len(out))
}

// lookupModel resolves a model id, locked.
func (s *Server) lookupModel(id string) (modelRecord, bool) {
	for _, m := range s.models {
		if m.ID == id {
			return m, true
		}
	}
	return modelRecord{}, false
}

// lookupMaterial resolves a material id, locked.
func (s *Server) lookupMaterial(id string) (materialRecord, bool) {
	for _, m := range s.materials {
		if m.ID == id {
			return m, true
		}
	}
	return materialRecord{}, false
}

func (s *Server) appendCartRow(email, modelID, materialID string, quantity int) (cartRow, bool) {
	model, ok := s.lookupModel(modelID)
	if !ok {
		return cartRow{}, false
	}
	materialName := ""
	if materialID != "" {
		if mat, ok := s.lookupMaterial(materialID); ok {
			materialName = mat.Name
		}
	}
	s.nextCartID++
	row := cartRow{
		ID:           s.nextCartID,
		ModelID:      modelID,
		ModelName:    model.Name,
		MaterialID:   materialID,
		MaterialName: materialName,
		Quantity:     quantity,
		UnitPrice:    model.Price,
	}
	s.carts[email] = append(s.carts[email], row)
	return row, true
}

func (s *Server) handleCartCreate(c *gin.Context, user *userRecord) {
	var req struct {
		Model    string `json:"model"`
		Material string `json:"material"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.appendCartRow(user.Email, req.Model, req.Material, req.Quantity)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model not found."})
		return
	}
	c.JSON(http.StatusCreated, s.cartRowJSON(row))
}

func (s *Server) handleCartMergeAdd(c *gin.Context, user *userRecord) {
	var req struct {
		ModelID    string `json:"model_id"`
		MaterialID string `json:"material_id"`
		Quantity   int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeCalls = append(s.mergeCalls, MergeCall{
		ModelID:    req.ModelID,
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
	})

	// Merge semantics: increment an existing (model, material) row.
	rows := s.carts[user.Email]
	for i := range rows {
		if rows[i].ModelID == req.ModelID && rows[i].MaterialID == req.MaterialID {
			rows[i].Quantity += req.Quantity
			c.JSON(http.StatusOK, s.cartRowJSON(rows[i]))
			return
		}
	}
	row, ok := s.appendCartRow(user.Email, req.ModelID, req.MaterialID, req.Quantity)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model not found."})
		return
	}
	c.JSON(http.StatusCreated, s.cartRowJSON(row))
}

func (s *Server) handleCartDelete(c *gin.Context, user *userRecord) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.carts[user.Email]
	for i := range rows {
		if rows[i].ID == id {
			s.carts[user.Email] = append(rows[:i], rows[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleCartQuantity(c *gin.Context, user *userRecord) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"quantity": []string{"Quantity must be at least 1."}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.carts[user.Email]
	for i := range rows {
		if rows[i].ID == id {
			rows[i].Quantity = req.Quantity
			c.JSON(http.StatusOK, s.cartRowJSON(rows[i]))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// =============================================================================
// Catalog Handlers
// =============================================================================

func (s *Server) handleMaterials(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0, len(s.materials))
	for _, m := range s.materials {
		out = append(out, gin.H{
			"id":          m.ID,
			"name":        m.Name,
			"price_twd_g": fmt.Sprintf("%.2f", m.PriceG),
			"is_active":   m.IsActive,
		})
	}
	s.respondList(c, out, len(out))
}

func (s *Server) modelJSON(m modelRecord) gin.H {
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return gin.H{
		"id":          m.ID,
		"name":        m.Name,
		"price":       fmt.Sprintf("%.2f", m.Price),
		"status":      m.Status,
		"is_public":   m.IsPublic,
		"is_featured": m.Featured,
		"created_at":  createdAt.Format(time.RFC3339),
	}
}

func (s *Server) handlePublicModels(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.ToLower(c.Query("search"))
	featuredOnly := c.Query("is_featured") == "true"
	out := make([]gin.H, 0, len(s.models))
	for _, m := range s.models {
		if !m.IsPublic {
			continue
		}
		if featuredOnly && !m.Featured {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		out = append(out, s.modelJSON(m))
	}
	s.respondList(c, out, len(out))
}

func (s *Server) handlePublicModel(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.lookupModel(c.Param("id")); ok && m.IsPublic {
		c.JSON(http.StatusOK, s.modelJSON(m))
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleModel(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.lookupModel(c.Param("id")); ok {
		c.JSON(http.StatusOK, s.modelJSON(m))
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleMyModels(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0)
	for _, m := range s.models {
		if m.Owner == user.Email {
			out = append(out, s.modelJSON(m))
		}
	}
	s.respondList(c, out, len(out))
}

func (s *Server) handleModelCreate(c *gin.Context, user *userRecord) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"This field is required."}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := modelRecord{
		ID:     uuid.NewString(),
		Name:   name,
		Status: "DRAFT",
		Owner:  user.Email,
	}
	s.models = append(s.models, m)
	c.JSON(http.StatusCreated, s.modelJSON(m))
}

func (s *Server) handleModelUpdate(c *gin.Context, user *userRecord) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.models {
		if s.models[i].ID == c.Param("id") {
			if name, ok := patch["name"].(string); ok {
				s.models[i].Name = name
			}
			c.JSON(http.StatusOK, s.modelJSON(s.models[i]))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleModelDelete(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.models {
		if s.models[i].ID == c.Param("id") {
			s.models = append(s.models[:i], s.models[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleModelSubmit(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.models {
		if s.models[i].ID == c.Param("id") {
			s.models[i].Status = "PENDING_REVIEW"
			c.JSON(http.StatusOK, s.modelJSON(s.models[i]))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleReviewLogs(c *gin.Context, user *userRecord) {
	s.respondList(c, []gin.H{}, 0)
}

func (s *Server) handleUploadImages(c *gin.Context, user *userRecord) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No images provided."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploaded": len(form.File)})
}

// =============================================================================
// Order Handlers
// =============================================================================

func (s *Server) orderJSON(o orderRecord) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, row := range o.Items {
		items = append(items, gin.H{
			"id":            row.ID,
			"model_name":    row.ModelName,
			"material_name": row.MaterialName,
			"quantity":      row.Quantity,
			"unit_price":    fmt.Sprintf("%.2f", row.UnitPrice),
		})
	}
	return gin.H{
		"id":               o.ID,
		"status":           o.Status,
		"total_price":      fmt.Sprintf("%.2f", o.Total),
		"shipping_address": o.Address,
		"items":            items,
		"created_at":       o.Created.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleOrderList(c *gin.Context, user *userRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0)
	for _, o := range s.orders[user.Email] {
		out = append(out, s.orderJSON(o))
	}
	s.respondList(c, out, len(out))
}

func (s *Server) handleOrderCreate(c *gin.Context, user *userRecord) {
	var req struct {
		ShippingAddress string `json:"shipping_address"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ShippingAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.carts[user.Email]
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty."})
		return
	}

	total := 0.0
	for _, row := range rows {
		total += row.UnitPrice * float64(row.Quantity)
	}
	s.nextOrderID++
	order := orderRecord{
		ID:      s.nextOrderID,
		Owner:   user.Email,
		Status:  "PENDING",
		Total:   total,
		Address: req.ShippingAddress,
		Items:   rows,
		Created: time.Now(),
	}
	s.orders[user.Email] = append(s.orders[user.Email], order)
	s.carts[user.Email] = nil // ordering consumes the cart
	c.JSON(http.StatusCreated, s.orderJSON(order))
}

func (s *Server) handleOrder(c *gin.Context, user *userRecord) {
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders[user.Email] {
		if o.ID == id {
			c.JSON(http.StatusOK, s.orderJSON(o))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleOrderCancel(c *gin.Context, user *userRecord) {
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[user.Email]
	for i := range orders {
		if orders[i].ID == id {
			if orders[i].Status != "PENDING" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending orders can be cancelled."})
				return
			}
			orders[i].Status = "CANCELLED"
			c.JSON(http.StatusOK, s.orderJSON(orders[i]))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}
