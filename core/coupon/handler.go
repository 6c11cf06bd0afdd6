package coupon

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/goshop/api/web"
	"github.com/irsalhamdi/goshop/api/weberr"
	"github.com/irsalhamdi/goshop/validate"
	"github.com/jmoiron/sqlx"
)

// CartURL is where the apply flow always hands control back to.
const CartURL = "/cart"

func HandleApply(db *sqlx.DB, sess *scs.SessionManager) web.Handler {
	return handleApply(DBFinder{DB: db}, sess)
}

// handleApply redirects to the cart whether or not the code matched. A
// code that fails validation never reaches the finder.
func handleApply(finder Finder, sess *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := r.ParseForm(); err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing coupon form: %w", err))
		}

		form := CouponApply{Code: strings.TrimSpace(r.PostFormValue("code"))}
		if err := validate.Check(form); err == nil {
			if _, err := Apply(ctx, sess, finder, form.Code, time.Now().UTC()); err != nil {
				return fmt.Errorf("applying coupon: %w", err)
			}
		}

		http.Redirect(w, r, CartURL, http.StatusSeeOther)
		return nil
	}
}
