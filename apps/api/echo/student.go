package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
)

var errStudentNotFoundInCtx = errors.New("student object not found in echo.Context")

type studentApi struct {
	svc         *student.Service
	deadlineSvc *deadline.Service
	validate    *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, deadlineSvc *deadline.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, deadlineSvc: deadlineSvc, validate: validate}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.DELETE("", api.destroyMultiple)

	// detail endpoints
	dg := sg.Group("/:id", ctxStudentMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.updatePrefs)
	dg.DELETE("", api.destroy)
	dg.GET("/digest", api.digest)
	dg.POST("/pins", api.pin)
	dg.DELETE("/pins", api.unpin)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	st, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) updatePrefs(ctx echo.Context) error {
	st, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}

	var data student.UpdatePrefs
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePrefs")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.UpdatePrefs(st.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student prefs")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	st, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(st.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// digest previews the reminder set the student would receive today.
func (api *studentApi) digest(ctx echo.Context) error {
	st, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}
	items, err := api.deadlineSvc.Digest(st.PinnedIdentitySet(), st.LeadDays)
	if err != nil {
		return errors.Wrap(err, "building digest")
	}
	if items == nil {
		items = []deadline.Deadline{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *studentApi) pin(ctx echo.Context) error {
	st, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}

	var data PinRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PinRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.Pin(st.ID, student.Pin{
		Key:   data.Key,
		Title: data.Title,
		Date:  deadline.StartOfDay(data.Date),
	})
	if err != nil {
		return errors.Wrap(err, "pinning deadline")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) unpin(ctx echo.Context) error {
	st, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStudentNotFoundInCtx, "retrieving object from context")
	}

	key := ctx.QueryParam("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key is required")
	}

	st, err := api.svc.Unpin(st.ID, key)
	if err != nil {
		if errors.Cause(err) == student.ErrPinNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "unpinning deadline")
	}
	return ctx.JSON(http.StatusOK, st)
}

func ctxStudentMiddleware(svc *student.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil {
				return errHttpNotFound
			}
			st, err := svc.GetByID(id)
			if err != nil {
				if errors.Cause(err) == student.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding student by ID")
			}
			ctx.Set("object", st)
			return next(ctx)
		}
	}
}

type (
	PinRequest struct {
		Key   string    `json:"key" validate:"required"`
		Title string    `json:"title" validate:"required"`
		Date  time.Time `json:"date" validate:"required"`
	}

	DestroyMultipleRequest struct {
		IDs []int `query:"id"`
	}
)

func (pr *PinRequest) Validate(validate *validator.Validate) error {
	pr.Key = core.CleanString(pr.Key)
	pr.Title = core.CleanString(pr.Title)
	return validate.Struct(pr)
}
