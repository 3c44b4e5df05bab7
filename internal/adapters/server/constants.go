package server

const (
	OperationListCategories = "list_categories"
	OperationLookupCategory = "lookup_category"
	OperationClassify       = "classify"
	OperationValidateName   = "validate_name"
	OperationProbeLocation  = "probe_location"
	LogCategoriesListed     = "Categories listed"
	LogCategoryResolved     = "Category resolved"
	LogErrorClassified      = "Error classified"
	LogNameValidated        = "File name validated"
	LogLocationProbed       = "Location probed"
	QueryParamFormat        = "format"
	QueryParamIdentity      = "identity"
	QueryParamName          = "name"
	QueryParamLocation      = "location"
	QueryParamGroup         = "group"
	QueryParamPath          = "path"
	QueryParamMustExist     = "must_exist"
	FormParamName           = "name"
	HeaderContentType       = "Content-Type"
	RequestBodyContext      = "request body"
)
