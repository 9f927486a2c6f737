package translation

// EnglishCatalog carries the built-in English messages. Deployments add or
// override languages with LoadCatalogFile.
var EnglishCatalog = map[string]string{
	// Statuses
	"shippingCreated":         "Created",
	"shippingRequestSent":     "Request sent",
	"shippingConfirmed":       "Confirmed",
	"shippingCompleted":       "Completed",
	"shippingBillSend":        "Bill sent",
	"shippingArhive":          "Archived",
	"shippingSlotBooked":      "Slot booked",
	"shippingSlotCancelled":   "Slot cancelled",
	"shippingChangesAgreeing": "Changes agreeing",
	"shippingCanceled":        "Cancelled",
	"shippingRejectedByTc":    "Rejected by carrier",

	// Actions
	"sendShippingRequest":   "Send request",
	"confirmShipping":       "Confirm",
	"rejectShippingRequest": "Reject request",
	"completeShipping":      "Complete",
	"sendShippingBill":      "Send bill",
	"archiveShipping":       "Archive",
	"cancelShipping":        "Cancel",
	"rollbackShipping":      "Roll back",
	"sendToPooling":         "Send to pooling",
	"cancelPoolingSlot":     "Cancel pooling slot",

	// Action results and history messages
	"shippingSetRequestSent":       "Request for shipping %s was sent to the carrier",
	"shippingSetConfirmed":         "Shipping %s was confirmed by the carrier",
	"shippingSetRejected":          "Request for shipping %s was rejected by the carrier",
	"shippingSetCompleted":         "Shipping %s was completed",
	"shippingSetBillSend":          "Bill for shipping %s was sent",
	"shippingSetArchived":          "Shipping %s was archived",
	"shippingSetCancelled":         "Shipping %s was cancelled",
	"shippingRolledBack":           "Shipping %s was rolled back to %s",
	"shippingRollbackNothingToDo":  "Nothing to roll back",
	"shippingSlotBookedFor":        "Slot %[2]s was booked for shipping %[1]s",
	"shippingSlotReleased":         "Slot for shipping %s was released",
	"shippingRequestDataChanged":   "Shipping request data was changed",
	"shippingRequestNeedsCarrier":  "Assign a carrier before sending the request",
	"shippingNotFound":             "Shipping was not found",
	"poolingOrdersNotEligible":     "Orders under this shipping are not eligible for pooling",
	"poolingSlotBookingFailed":     "Pooling slot booking failed: %s",
	"poolingSlotCancelFailed":      "Pooling slot cancellation failed: %s",
	"poolingSlotUpdateFailed":      "Pooling slot update failed: %s",
	"poolingSlotResynced":          "Pooling slot was re-synchronized",
	"internalError":                "Internal error",

	// Pooling API failures
	"poolingApiUnauthorized":        "Pooling service rejected the credentials",
	"poolingApiForbidden":           "Pooling service denied access",
	"poolingApiNotFound":            "Pooling slot was not found",
	"poolingApiInternalServerError": "Pooling service failed",
	"poolingApiUnavailable":         "Pooling service is unavailable",
}
