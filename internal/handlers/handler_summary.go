package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pfa-dev/personal_finance_app/internal/apperrors"
	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
	portssvc "github.com/pfa-dev/personal_finance_app/internal/core/ports/services"
	"github.com/pfa-dev/personal_finance_app/internal/dto"
	"github.com/pfa-dev/personal_finance_app/internal/middleware"
)

// summaryHandler handles HTTP requests for the aggregate views.
type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

// registerSummaryRoutes registers routes related to summaries.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := &summaryHandler{summaryService: summaryService}

	summary := rg.Group("/summary")
	{
		summary.GET("/balance", h.getTotalBalance)
		summary.GET("/income", h.getIncomeSum)
		summary.GET("/expense", h.getExpenseSum)
		summary.GET("/income-by-category", h.getIncomeByCategory)
		summary.GET("/expense-by-category", h.getExpenseByCategory)
		summary.GET("/monthly", h.getMonthlyData)
	}
}

func (h *summaryHandler) getTotalBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.summaryService.TotalBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute total balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.TotalBalanceResponse{Balance: balance})
}

// bindSummaryQuery binds the shared period selector, responding with 400 on
// failure. The bool result reports whether the caller should proceed.
func bindSummaryQuery(c *gin.Context) (domain.Period, *domain.DateRange, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return "", nil, false
	}

	custom, err := query.CustomRange()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range: " + err.Error()})
		return "", nil, false
	}
	return domain.Period(query.Period), custom, true
}

type sumFn func(ctx *gin.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error)

func (h *summaryHandler) respondSum(c *gin.Context, compute sumFn) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, custom, ok := bindSummaryQuery(c)
	if !ok {
		return
	}

	total, resolved, err := compute(c, period, custom)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute sum", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SumResponse{
		Total:     total,
		StartDate: resolved.Start.Format(time.DateOnly),
		EndDate:   resolved.End.Format(time.DateOnly),
	})
}

func (h *summaryHandler) getIncomeSum(c *gin.Context) {
	h.respondSum(c, func(c *gin.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error) {
		return h.summaryService.IncomeSum(c.Request.Context(), period, custom)
	})
}

func (h *summaryHandler) getExpenseSum(c *gin.Context) {
	h.respondSum(c, func(c *gin.Context, period domain.Period, custom *domain.DateRange) (decimal.Decimal, domain.DateRange, error) {
		return h.summaryService.ExpenseSum(c.Request.Context(), period, custom)
	})
}

type categorySumFn func(ctx *gin.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error)

func (h *summaryHandler) respondCategorySums(c *gin.Context, compute categorySumFn) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, custom, ok := bindSummaryQuery(c)
	if !ok {
		return
	}

	sums, resolved, err := compute(c, period, custom)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute category sums", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CategorySumsResponse{
		Categories: sums,
		StartDate:  resolved.Start.Format(time.DateOnly),
		EndDate:    resolved.End.Format(time.DateOnly),
	})
}

func (h *summaryHandler) getIncomeByCategory(c *gin.Context) {
	h.respondCategorySums(c, func(c *gin.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error) {
		return h.summaryService.IncomeByCategory(c.Request.Context(), period, custom)
	})
}

func (h *summaryHandler) getExpenseByCategory(c *gin.Context) {
	h.respondCategorySums(c, func(c *gin.Context, period domain.Period, custom *domain.DateRange) ([]domain.CategorySum, domain.DateRange, error) {
		return h.summaryService.ExpenseByCategory(c.Request.Context(), period, custom)
	})
}

func (h *summaryHandler) getMonthlyData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	yearStr := c.DefaultQuery("year", strconv.Itoa(time.Now().UTC().Year()))
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + yearStr})
		return
	}

	months, err := h.summaryService.MonthlyData(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute monthly data", slog.String("error", err.Error()), slog.Int("year", year))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly data"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyDataResponse{Year: year, Months: months})
}
