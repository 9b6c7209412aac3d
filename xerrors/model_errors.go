package xerrors

var (
	// ErrEmptyData 输入数据为空。
	ErrEmptyData = New(ErrInvalidArg, 400001, "empty data", "input data must not be empty", nil)
	// ErrDimMismatch 维度不匹配。
	ErrDimMismatch = New(ErrInvalidArg, 400002, "dimension mismatch", "matrix or vector dimensions do not match", nil)
	// ErrRaggedMatrix 矩阵行长度不一致。
	ErrRaggedMatrix = New(ErrInvalidArg, 400003, "ragged matrix", "all matrix rows must have the same length", nil)
	// ErrDuplicateColumn 列名重复。
	ErrDuplicateColumn = New(ErrInvalidArg, 400004, "duplicate column", "column names must be unique within a frame", nil)
	// ErrUnknownColumn 列不存在。
	ErrUnknownColumn = New(ErrNotFound, 404001, "unknown column", "the named column does not exist in the frame", nil)
	// ErrAllMissing 整列缺失，均值无定义。
	ErrAllMissing = New(ErrInvalidArg, 400005, "column entirely missing", "mean is undefined for a column with no present values", nil)
	// ErrNotFitted 阶段未拟合。
	ErrNotFitted = New(ErrFailedPrecondition, 412001, "stage not fitted", "call Fit before Transform", nil)
	// ErrSchemaChanged 变换输入与拟合时的列集合不一致。
	ErrSchemaChanged = New(ErrFailedPrecondition, 412002, "schema changed", "transform input columns differ from the fitted schema", nil)
	// ErrInvalidSense 未知的优化方向。
	ErrInvalidSense = New(ErrInvalidArg, 400006, "invalid sense", "sense must be minimize or maximize", nil)
	// ErrInvalidBound 变量或约束上下界非法。
	ErrInvalidBound = New(ErrInvalidArg, 400007, "invalid bound", "bounds must be finite where required and lower <= upper", nil)
	// ErrInfeasibleModel 约束集合无可行解。
	ErrInfeasibleModel = New(ErrInfeasibleType, 422001, "infeasible model", "no assignment satisfies all constraints and bounds", nil)
	// ErrUnboundedModel 目标函数无界。
	ErrUnboundedModel = New(ErrUnboundedType, 422002, "unbounded model", "objective can be improved without limit", nil)
	// ErrSolverFailure 求解器内部失败。
	ErrSolverFailure = New(ErrInternal, 500001, "solver failure", "the simplex backend reported an unexpected error", nil)
)
