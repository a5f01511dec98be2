package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the payment, distribution, disbursement and gacha
// pipelines.
type PaymentMetrics struct {
	PaymentsCreatedTotal       prometheus.CounterVec
	PaymentsCapturedTotal      prometheus.CounterVec
	PaymentsFailedTotal        prometheus.CounterVec
	PaymentsDistributedTotal   prometheus.CounterVec
	DistributedAmountTotal     prometheus.CounterVec
	ProcessorFeeTotal          prometheus.CounterVec
	StaffShareTotal            prometheus.CounterVec
	ManagementShareTotal       prometheus.CounterVec
	ReviewRequiredTotal        prometheus.CounterVec
	DistributionDuration       prometheus.HistogramVec

	DisbursementsCreatedTotal   prometheus.CounterVec
	DisbursementsCompletedTotal prometheus.CounterVec
	DisbursementsRejectedTotal  prometheus.CounterVec
	DisbursedAmountTotal        prometheus.CounterVec

	GachaPlaysTotal prometheus.CounterVec
	SpinSpendTotal  prometheus.CounterVec

	ErrorsTotal prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Total number of created payments",
			},
			[]string{"store_id", "currency"},
		),

		PaymentsCapturedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_captured_total",
				Help: "Total number of successfully captured payments",
			},
			[]string{"store_id", "currency"},
		),

		PaymentsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_failed_total",
				Help: "Total number of failed payment captures",
			},
			[]string{"store_id", "reason"},
		),

		PaymentsDistributedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_distributed_total",
				Help: "Total number of payments distributed into the balance ledger",
			},
			[]string{"store_id"},
		),

		DistributedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "distributed_amount_total",
				Help: "Gross amount of distributed payments",
			},
			[]string{"currency"},
		),

		ProcessorFeeTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "processor_fee_total",
				Help: "Accumulated processor fees deducted from payments",
			},
			[]string{"currency"},
		),

		StaffShareTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staff_share_total",
				Help: "Accumulated staff share credited to balances",
			},
			[]string{"currency"},
		),

		ManagementShareTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "management_share_total",
				Help: "Accumulated management share split across tiers",
			},
			[]string{"tier", "currency"},
		),

		ReviewRequiredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_review_required_total",
				Help: "Payments flagged for manual review (fee exceeded amount)",
			},
			[]string{"store_id"},
		),

		DistributionDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distribution_duration_seconds",
				Help:    "Time spent distributing one payment",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"outcome"},
		),

		DisbursementsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disbursements_created_total",
				Help: "Total number of created disbursement requests",
			},
			[]string{},
		),

		DisbursementsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disbursements_completed_total",
				Help: "Total number of completed disbursement requests",
			},
			[]string{},
		),

		DisbursementsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disbursements_rejected_total",
				Help: "Total number of rejected disbursement requests",
			},
			[]string{},
		),

		DisbursedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disbursed_amount_total",
				Help: "Total amount paid out to staff",
			},
			[]string{"currency"},
		),

		GachaPlaysTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gacha_plays_total",
				Help: "Total gacha plays by result kind",
			},
			[]string{"kind"},
		),

		SpinSpendTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spin_spend_total",
				Help: "Accumulated spend converted towards gacha spins",
			},
			[]string{"store_id"},
		),

		ErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Total errors in payment processing by type",
			},
			[]string{"operation", "error_type"},
		),
	}
}

func (m *PaymentMetrics) RecordPaymentCreated(storeID, currency string) {
	m.PaymentsCreatedTotal.WithLabelValues(storeID, currency).Inc()
}

func (m *PaymentMetrics) RecordPaymentCaptured(storeID, currency string) {
	m.PaymentsCapturedTotal.WithLabelValues(storeID, currency).Inc()
}

func (m *PaymentMetrics) RecordPaymentFailed(storeID, reason string) {
	m.PaymentsFailedTotal.WithLabelValues(storeID, reason).Inc()
}

func (m *PaymentMetrics) RecordDistribution(storeID, currency string, gross, fee, staffShare float64, durationSeconds float64) {
	m.PaymentsDistributedTotal.WithLabelValues(storeID).Inc()
	m.DistributedAmountTotal.WithLabelValues(currency).Add(gross)
	m.ProcessorFeeTotal.WithLabelValues(currency).Add(fee)
	m.StaffShareTotal.WithLabelValues(currency).Add(staffShare)
	m.DistributionDuration.WithLabelValues("success").Observe(durationSeconds)
}

func (m *PaymentMetrics) RecordManagementShare(tier, currency string, amount float64) {
	m.ManagementShareTotal.WithLabelValues(tier, currency).Add(amount)
}

func (m *PaymentMetrics) RecordReviewRequired(storeID string) {
	m.ReviewRequiredTotal.WithLabelValues(storeID).Inc()
	m.DistributionDuration.WithLabelValues("review_required").Observe(0)
}

func (m *PaymentMetrics) RecordDisbursementCreated() {
	m.DisbursementsCreatedTotal.WithLabelValues().Inc()
}

func (m *PaymentMetrics) RecordDisbursementCompleted(currency string, amount float64) {
	m.DisbursementsCompletedTotal.WithLabelValues().Inc()
	m.DisbursedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *PaymentMetrics) RecordDisbursementRejected() {
	m.DisbursementsRejectedTotal.WithLabelValues().Inc()
}

func (m *PaymentMetrics) RecordGachaPlay(kind string) {
	m.GachaPlaysTotal.WithLabelValues(kind).Inc()
}

func (m *PaymentMetrics) RecordSpinSpend(storeID string, amount float64) {
	m.SpinSpendTotal.WithLabelValues(storeID).Add(amount)
}

func (m *PaymentMetrics) RecordError(operation, errorType string) {
	m.ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
