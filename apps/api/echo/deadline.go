package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
	"github.com/trezcool/tarehe/ical"
)

type deadlineApi struct {
	svc        *deadline.Service
	studentSvc *student.Service
}

func registerDeadlineAPI(g *echo.Group, svc *deadline.Service, studentSvc *student.Service) {
	api := deadlineApi{svc: svc, studentSvc: studentSvc}

	dg := g.Group("/deadlines")
	dg.GET("", api.query)
	dg.GET("/recommended", api.recommended)
	dg.GET("/export.ics", api.exportICS)

	ag := g.Group("/admin")
	ag.POST("/refresh", api.refresh)
}

// Handlers

func (api *deadlineApi) query(ctx echo.Context) error {
	items, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying deadlines")
	}
	if items == nil {
		items = []deadline.Deadline{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *deadlineApi) recommended(ctx echo.Context) error {
	target := deadline.DefaultTarget
	if raw := ctx.QueryParam("target"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid target")
		}
		target = n
	}

	var pinnedCats deadline.CategorySet
	var exclude deadline.KeySet
	if raw := ctx.QueryParam("student_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid student_id")
		}
		st, err := api.studentSvc.GetByID(id)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "finding student by ID")
		}
		pinnedCats = st.PinnedCategorySet()
		exclude = st.PinnedKeySet()
	}

	items, err := api.svc.Recommend(pinnedCats, exclude, target)
	if err != nil {
		return errors.Wrap(err, "recommending deadlines")
	}
	if items == nil {
		items = []deadline.Deadline{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *deadlineApi) exportICS(ctx echo.Context) error {
	items, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying deadlines")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="deadlines.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", ical.Marshal(items))
}

func (api *deadlineApi) refresh(ctx echo.Context) error {
	count, err := api.svc.Refresh(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "refreshing deadlines")
	}
	return ctx.JSON(http.StatusOK, RefreshResponse{Count: count})
}

type RefreshResponse struct {
	Count int `json:"count"`
}
