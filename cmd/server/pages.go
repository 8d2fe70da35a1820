package main

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/metrics"
	"github.com/Simplici0/bizness/internal/overview"
	"github.com/Simplici0/bizness/internal/pricing"
	"github.com/Simplici0/bizness/internal/store"
	"github.com/Simplici0/bizness/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"rupiah":  pricing.FormatRupiah,
	"percent": pricing.FormatPercent,
}

type baseViewData struct {
	User           *auth.User
	ErrorMessage   string
	SuccessMessage string
	Fields         validation.Errors
}

type loginViewData struct {
	baseViewData
	Email string
}

type registerViewData struct {
	baseViewData
	Name  string
	Email string
}

type dashboardViewData struct {
	baseViewData
	Businesses []store.Business
}

type workspaceViewData struct {
	baseViewData
	Business     store.Business
	Stats        overview.Stats
	Query        string
	Products     []store.Product
	Files        []store.File
	Transactions []store.Transaction
}

type calculatorViewData struct {
	baseViewData
	Materials    []pricing.MaterialLine
	LaborCost    string
	OverheadCost string
	Quantity     string
	Margin       float64
	MinMargin    int
	MaxMargin    int
	Result       calculatorResponse
}

type adminViewData struct {
	baseViewData
	Query string
	Users []store.UserSummary
}

func (s *server) base(r *http.Request) baseViewData {
	data := baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}
	if u, ok := auth.UserFromContext(r.Context()); ok {
		data.User = &u
	}
	return data
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, r, "login.html", loginViewData{baseViewData: s.base(r)})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	u, err := s.auth.Authenticate(r.Context(), email, r.FormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderTemplate(w, r, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: "Invalid email or password. Please try again."},
			Email:        email,
		})
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login failed")
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}

	s.auth.SetSessionCookie(w, u.ID)
	zerolog.Ctx(r.Context()).Info().Str("user_id", u.ID).Msg("user logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, "register.html", registerViewData{baseViewData: s.base(r)})
}

func (s *server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := validation.Registration{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	u, err := s.auth.Register(r.Context(), in, auth.RoleUser)
	if err != nil {
		view := registerViewData{Name: in.Name, Email: in.Email}
		var fields validation.Errors
		switch {
		case errors.As(err, &fields):
			view.ErrorMessage = "Please correct the highlighted fields."
			view.Fields = fields
		case errors.Is(err, auth.ErrEmailTaken):
			view.ErrorMessage = errMsgEmailTaken
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("registration failed")
			http.Error(w, "registration error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, r, "register.html", view)
		return
	}

	s.auth.SetSessionCookie(w, u.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.UserFromContext(r.Context()); ok {
		s.store.ClearCurrentBusiness(u.ID)
	}
	s.auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	businesses, err := s.store.ListBusinesses(r.Context(), currentUser(r).ID)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list businesses")
		http.Error(w, "failed to load businesses", http.StatusInternalServerError)
		return
	}
	s.renderTemplate(w, r, "dashboard.html", dashboardViewData{baseViewData: s.base(r), Businesses: businesses})
}

func (s *server) handleBusinessCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	_, err := s.store.CreateBusiness(r.Context(), currentUser(r).ID, validation.BusinessInput{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Logo:     r.FormValue("logo"),
	})
	var fields validation.Errors
	if errors.As(err, &fields) {
		http.Redirect(w, r, "/?error="+url.QueryEscape(fields[0].Message), http.StatusSeeOther)
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("create business")
		http.Error(w, "failed to create business", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/?success=Business+created", http.StatusSeeOther)
}

func (s *server) handleBusinessSelect(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.SetCurrentBusiness(r.Context(), currentUser(r).ID, chi.URLParam(r, "businessID"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("select business")
		http.Error(w, "failed to select business", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/workspace", http.StatusSeeOther)
}

func (s *server) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	b, ok := s.currentBusinessOrRedirect(w, r)
	if !ok {
		return
	}

	view := workspaceViewData{
		baseViewData: s.base(r),
		Business:     b,
		Query:        strings.TrimSpace(r.URL.Query().Get("q")),
	}

	var err error
	if view.Stats, err = s.overview(r, b.ID); err == nil {
		if view.Products, err = s.store.ListProducts(r.Context(), b.ID, view.Query); err == nil {
			if view.Files, err = s.store.ListFiles(r.Context(), b.ID); err == nil {
				view.Transactions, err = s.store.ListTransactions(r.Context(), b.ID)
			}
		}
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("business_id", b.ID).Msg("load workspace")
		http.Error(w, "failed to load workspace", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, r, "workspace.html", view)
}

func (s *server) handleProductCreatePage(w http.ResponseWriter, r *http.Request) {
	b, ok := s.currentBusinessOrRedirect(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	p, err := validation.ValidateProductForm(validation.ProductForm{
		Name:         r.FormValue("name"),
		Category:     r.FormValue("category"),
		HPP:          r.FormValue("hpp"),
		SellingPrice: r.FormValue("selling_price"),
		Stock:        r.FormValue("stock"),
	})
	if err == nil {
		_, err = s.store.CreateProduct(r.Context(), b.ID, validation.ProductInput{
			Name:         p.Name,
			Category:     p.Category,
			HPP:          p.HPP,
			SellingPrice: p.SellingPrice,
			Stock:        float64(p.Stock),
		})
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		metrics.ValidationRejections.WithLabelValues("product_form").Inc()
		http.Redirect(w, r, "/workspace?error="+url.QueryEscape(fields[0].Message), http.StatusSeeOther)
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("create product")
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/workspace?success=Product+added", http.StatusSeeOther)
}

func (s *server) currentBusinessOrRedirect(w http.ResponseWriter, r *http.Request) (store.Business, bool) {
	b, err := s.store.CurrentBusiness(r.Context(), currentUser(r).ID)
	if errors.Is(err, store.ErrNoCurrentBusiness) {
		http.Redirect(w, r, "/?error=Select+a+business+first", http.StatusSeeOther)
		return store.Business{}, false
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load current business")
		http.Error(w, "failed to load business", http.StatusInternalServerError)
		return store.Business{}, false
	}
	return b, true
}

func (s *server) handleCalculatorForm(w http.ResponseWriter, r *http.Request) {
	session := pricing.NewSession()
	s.renderCalculator(w, r, session, "")
}

// handleCalculatorSubmit rebuilds the calculator session from the posted
// form. The "action" button adds a line, removes line "remove:<id>", or
// just recalculates.
func (s *server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session := sessionFromForm(r)

	var message string
	action := r.FormValue("action")
	switch {
	case action == "add":
		session.AddMaterial("", "", "")
	case strings.HasPrefix(action, "remove:"):
		id, err := strconv.Atoi(strings.TrimPrefix(action, "remove:"))
		if err != nil {
			http.Error(w, "invalid action", http.StatusBadRequest)
			return
		}
		if err := session.RemoveMaterial(id); errors.Is(err, pricing.ErrLastMaterial) {
			message = "At least one material is required."
		} else if err != nil {
			http.Error(w, "invalid action", http.StatusBadRequest)
			return
		}
	}

	s.renderCalculator(w, r, session, message)
}

func sessionFromForm(r *http.Request) *pricing.Session {
	session := pricing.NewSession()
	first := session.Materials()[0]

	names := r.Form["material_name"]
	units := r.Form["material_unit"]
	prices := r.Form["material_price"]
	for i, name := range names {
		unit, price := at(units, i), at(prices, i)
		if i == 0 {
			_ = session.UpdateMaterial(pricing.MaterialLine{ID: first.ID, Name: name, Unit: unit, Price: price})
			continue
		}
		session.AddMaterial(name, unit, price)
	}

	session.LaborCost = r.FormValue("labor_cost")
	session.OverheadCost = r.FormValue("overhead_cost")
	session.Quantity = r.FormValue("quantity")
	if margin, err := strconv.ParseFloat(r.FormValue("margin"), 64); err == nil {
		session.TargetMarginPercent = pricing.ClampMargin(margin)
	}
	return session
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func (s *server) renderCalculator(w http.ResponseWriter, r *http.Request, session *pricing.Session, errMsg string) {
	in := session.Inputs()
	in.TargetMarginPercent = pricing.ClampMargin(in.TargetMarginPercent)
	margin := in.TargetMarginPercent
	view := calculatorViewData{
		baseViewData: s.base(r),
		Materials:    in.Materials,
		LaborCost:    in.LaborCost,
		OverheadCost: in.OverheadCost,
		Quantity:     in.Quantity,
		Margin:       margin,
		MinMargin:    pricing.MinMarginPercent,
		MaxMargin:    pricing.MaxMarginPercent,
		Result:       calculate(in, metrics.SourcePage),
	}
	if errMsg != "" {
		view.ErrorMessage = errMsg
	}
	s.renderTemplate(w, r, "calculator.html", view)
}

func (s *server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	users, err := s.store.ListUserSummaries(r.Context(), query)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list users")
		http.Error(w, "failed to load users", http.StatusInternalServerError)
		return
	}
	s.renderTemplate(w, r, "admin.html", adminViewData{baseViewData: s.base(r), Query: query, Users: users})
}

func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("parse template")
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("render template")
	}
}
