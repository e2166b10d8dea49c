package domain

// Keys used with gin.Context.Set/Get.
const (
	KeyRequestID = "RequestID"
	KeySession   = "Session"
	KeyCSRFToken = "CSRFToken"
)
