package employee

import "hrms/internal/domain/auth"

// FilterFields strips personal fields from emp unless the viewer is HR,
// an Admin, or the employee themselves.
func FilterFields(emp *Employee, user auth.UserContext) {
	if user.Can(auth.CapManage) {
		return
	}
	if user.EmployeeID != "" && user.EmployeeID == emp.ID {
		return
	}
	emp.Phone = ""
	emp.ContractEndDate = nil
	emp.LeaveBalance = LeaveBalance{}
}
