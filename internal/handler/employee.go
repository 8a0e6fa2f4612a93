package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/middleware"
	"employee-directory/internal/model"
	"employee-directory/internal/service"

	"github.com/gofiber/fiber/v2"
)

const imageField = "image"

type EmployeeHandler struct {
	employees *service.EmployeeService
	log       logging.Logger
}

func NewEmployeeHandler(employees *service.EmployeeService, log logging.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, log: log}
}

func (h *EmployeeHandler) HandleList(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) HandleRecent(c *fiber.Ctx) error {
	employees, err := h.employees.Recent(c.UserContext())
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) HandleGet(c *fiber.Ctx) error {
	employee, err := h.employees.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}
	return c.JSON(employee)
}

func (h *EmployeeHandler) HandleCreate(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, h.log, employeeErrorKey,
			domain.NewValidationError("All fields are required, including the image."))
	}

	image, err := readImage(form)
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}

	input := model.EmployeeInput{
		Name:        formValue(form, "name"),
		Email:       formValue(form, "email"),
		Mobile:      formValue(form, "mobile"),
		Designation: formValue(form, "designation"),
		Gender:      formValue(form, "gender"),
		Course:      formValue(form, "course"),
		CreatedDate: formValue(form, "createdDate"),
		Image:       image,
	}

	employee, err := h.employees.Create(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee.Raw())
}

// UpdateInput is a non-multipart update body. Absent fields stay nil.
type UpdateInput struct {
	Name        *string `json:"name" form:"name"`
	Email       *string `json:"email" form:"email"`
	Mobile      *string `json:"mobile" form:"mobile"`
	Designation *string `json:"designation" form:"designation"`
	Gender      *string `json:"gender" form:"gender"`
	Course      *string `json:"course" form:"course"`
	CreatedDate *string `json:"createdDate" form:"createdDate"`
}

func (h *EmployeeHandler) HandleUpdate(c *fiber.Ctx) error {
	upd, err := parseUpdate(c)
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}

	employee, err := h.employees.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), upd)
	if err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}
	return c.JSON(employee.Raw())
}

// parseUpdate reads a multipart body (fields and an optional image) or,
// failing that, a JSON or urlencoded body. An empty body changes nothing.
func parseUpdate(c *fiber.Ctx) (model.EmployeeUpdate, error) {
	if len(c.Body()) == 0 {
		return model.EmployeeUpdate{}, nil
	}

	if form, err := c.MultipartForm(); err == nil {
		upd := model.EmployeeUpdate{
			Name:        formField(form, "name"),
			Email:       formField(form, "email"),
			Mobile:      formField(form, "mobile"),
			Designation: formField(form, "designation"),
			Gender:      formField(form, "gender"),
			Course:      formField(form, "course"),
			CreatedDate: formField(form, "createdDate"),
		}
		upd.Image, err = readImage(form)
		return upd, err
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return model.EmployeeUpdate{}, domain.NewValidationError("Invalid request body")
	}
	return model.EmployeeUpdate{
		Name:        input.Name,
		Email:       input.Email,
		Mobile:      input.Mobile,
		Designation: input.Designation,
		Gender:      input.Gender,
		Course:      input.Course,
		CreatedDate: input.CreatedDate,
	}, nil
}

func (h *EmployeeHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, employeeErrorKey, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}

// formField distinguishes an absent field (nil) from an empty one.
func formField(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formValue(form *multipart.Form, key string) string {
	if v := formField(form, key); v != nil {
		return *v
	}
	return ""
}

// readImage returns the uploaded image bytes, or nil when none was sent.
func readImage(form *multipart.Form) ([]byte, error) {
	files := form.File[imageField]
	if len(files) == 0 {
		return nil, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("Unreadable image: %v", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("Unreadable image: %v", err))
	}
	return data, nil
}
