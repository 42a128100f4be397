package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldReportID  = "report_id"
	FieldSource    = "source"
	FieldAddress   = "address"
	FieldProvider  = "provider"
	FieldLinesRead = "lines_read"
	FieldLine      = "line"
)
