package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/goshop/api/middleware"
	"github.com/irsalhamdi/goshop/api/web"
	"github.com/irsalhamdi/goshop/api/weberr"
	"github.com/irsalhamdi/goshop/core/cart"
	"github.com/irsalhamdi/goshop/core/coupon"
	"github.com/irsalhamdi/goshop/core/product"
	"github.com/irsalhamdi/goshop/database"
	"github.com/irsalhamdi/goshop/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin    string
	Log           logrus.FieldLogger
	DB            *sqlx.DB
	Session       *scs.SessionManager
	CouponLimiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

// APIMux wires every route. The session is loaded before and committed
// after the whole chain, so handlers read and write it through ctx.
func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID(middleware.DefaultRequestIDLengthLimit))
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	var limit web.Middleware
	if cfg.CouponLimiter != nil {
		limit = middleware.RateLimit(cfg.CouponLimiter)
	}

	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))

	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB, cfg.Session, cfg.Log))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.DB, cfg.Session, cfg.Log))
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cfg.DB, cfg.Session, cfg.Log))
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleDeleteItem(cfg.DB, cfg.Session, cfg.Log))

	a.Handle(http.MethodPost, "/coupons/apply", coupon.HandleApply(cfg.DB, cfg.Session), limit)

	return cfg.Session.LoadAndSave(a.Router)
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}

func handleHealth(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := database.StatusCheck(ctx, db); err != nil {
			return weberr.NewError(fmt.Errorf("checking database: %w", err), "database not ready", http.StatusServiceUnavailable)
		}

		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
