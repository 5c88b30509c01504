package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionTariffLoaded   = "tariff_loaded"
	ActionTariffReloaded = "tariff_reloaded"

	ActionFareEstimate = "fare_estimate"

	ActionBookingCreate = "booking_create"
	ActionBookingGet    = "booking_get"
	ActionBookingList   = "booking_list"

	ActionMeterStart  = "meter_start"
	ActionMeterUpdate = "meter_update"
	ActionMeterStop   = "meter_stop"
	ActionMeterGet    = "meter_get"

	ActionAdminStats = "admin_stats"

	ActionDatabaseTransactionFailed = "database_transaction_failed"
)
