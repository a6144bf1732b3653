package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionDatabaseTransactionFailed = "database_transaction_failed"
	ActionCacheFailed               = "report_cache_failed"

	ActionGenerateReport = "generate_report"
	ActionExtractEntries = "extract_entries"
	ActionArchiveReport  = "archive_report"
	ActionLoadChart      = "load_mileage_chart"
)
