package document

// CS Form No. 6 (Revised 2020) rendered as a standalone HTML document. The
// layout mirrors the printed form closely enough for HR to file it.
const form6Template = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>CS Form No. 6 - {{.ApplicationNumber}}</title>
<style>
  body { font-family: "Times New Roman", serif; font-size: 12px; margin: 24px; }
  .form { max-width: 800px; margin: 0 auto; border: 1px solid #000; padding: 16px; }
  .header { text-align: center; margin-bottom: 12px; }
  .header .form-no { text-align: left; font-style: italic; }
  .title { font-weight: bold; font-size: 16px; letter-spacing: 1px; }
  table { width: 100%; border-collapse: collapse; }
  td, th { border: 1px solid #000; padding: 4px 6px; vertical-align: top; }
  .section-label { background: #eee; font-weight: bold; }
  .checkbox { font-size: 14px; }
  .blank { letter-spacing: 1px; }
  .signature { text-align: center; padding-top: 28px; }
</style>
</head>
<body>
<div class="form">
  <div class="header">
    <div class="form-no">Civil Service Form No. 6<br>Revised 2020</div>
    <div class="title">APPLICATION FOR LEAVE</div>
  </div>

  <table>
    <tr>
      <td class="section-label" colspan="2">1. OFFICE/DEPARTMENT</td>
      <td class="section-label" colspan="2">2. NAME (Last, First, Middle)</td>
    </tr>
    <tr>
      <td colspan="2">{{.OfficeDepartment}}</td>
      <td colspan="2">{{.EmployeeName}}</td>
    </tr>
    <tr>
      <td class="section-label">3. DATE OF FILING</td>
      <td class="section-label">4. POSITION</td>
      <td class="section-label" colspan="2">5. SALARY</td>
    </tr>
    <tr>
      <td>{{.DateOfFiling}}</td>
      <td>{{.PositionTitle}}</td>
      <td colspan="2">{{.Salary}}</td>
    </tr>
  </table>

  <table>
    <tr><td class="section-label" colspan="2">6. DETAILS OF APPLICATION</td></tr>
    <tr>
      <td style="width:50%">
        <b>6.A TYPE OF LEAVE TO BE AVAILED OF</b><br>
        {{range .LeaveTypeChoices}}
        <span class="checkbox">{{.Mark}}</span> {{.Label}}<br>
        {{end}}
        <span class="checkbox">{{.OthersMark}}</span> Others: <span class="blank">{{.LeaveTypeOthers}}</span>
      </td>
      <td style="width:50%">
        <b>6.B DETAILS OF LEAVE</b><br>
        <i>In case of Vacation/Special Privilege Leave:</i><br>
        <span class="checkbox">{{.WithinPHMark}}</span> Within the Philippines <span class="blank">{{.VacationWithinDetail}}</span><br>
        <span class="checkbox">{{.AbroadMark}}</span> Abroad (Specify) <span class="blank">{{.VacationAbroadDetail}}</span><br>
        <i>In case of Sick Leave:</i><br>
        <span class="checkbox">{{.InHospitalMark}}</span> In Hospital (Specify Illness) <span class="blank">{{.SickInHospitalDetail}}</span><br>
        <span class="checkbox">{{.OutPatientMark}}</span> Out Patient (Specify Illness) <span class="blank">{{.SickOutPatientDetail}}</span><br>
        <i>In case of Special Leave Benefits for Women:</i><br>
        (Specify Illness) <span class="blank">{{.SpecialLeaveIllness}}</span><br>
        <i>In case of Study Leave:</i><br>
        <span class="checkbox">{{.MastersMark}}</span> Completion of Master's Degree<br>
        <span class="checkbox">{{.BarReviewMark}}</span> BAR/Board Examination Review<br>
        <i>Other purpose:</i><br>
        <span class="checkbox">{{.MonetizationMark}}</span> Monetization of Leave Credits<br>
        <span class="checkbox">{{.TerminalLeaveMark}}</span> Terminal Leave
      </td>
    </tr>
    <tr>
      <td>
        <b>6.C NUMBER OF WORKING DAYS APPLIED FOR</b><br>
        {{.NumWorkingDays}}<br>
        <b>INCLUSIVE DATES</b><br>
        {{.InclusiveDateStart}} to {{.InclusiveDateEnd}}
      </td>
      <td>
        <b>6.D COMMUTATION</b><br>
        <span class="checkbox">{{.CommutationNotRequestedMark}}</span> Not Requested<br>
        <span class="checkbox">{{.CommutationRequestedMark}}</span> Requested<br>
        <div class="signature">{{.EmployeeName}}<br>(Signature of Applicant)</div>
      </td>
    </tr>
  </table>

  <table>
    <tr><td class="section-label" colspan="2">7. DETAILS OF ACTION ON APPLICATION</td></tr>
    <tr>
      <td style="width:50%">
        <b>7.A CERTIFICATION OF LEAVE CREDITS</b><br>
        As of <span class="blank">{{.CertAsOfDate}}</span><br>
        <table>
          <tr><th></th><th>Vacation Leave</th><th>Sick Leave</th></tr>
          <tr><td>Total Earned</td><td>{{.CertVLTotalEarned}}</td><td>{{.CertSLTotalEarned}}</td></tr>
          <tr><td>Less this application</td><td>{{.CertVLLessThis}}</td><td>{{.CertSLLessThis}}</td></tr>
          <tr><td>Balance</td><td>{{.CertVLBalance}}</td><td>{{.CertSLBalance}}</td></tr>
        </table>
      </td>
      <td style="width:50%">
        <b>7.B RECOMMENDATION</b><br>
        <span class="checkbox">{{.RecommendApprovalMark}}</span> For approval<br>
        <span class="checkbox">{{.RecommendDisapprovalMark}}</span> For disapproval due to <span class="blank">{{.RecommendationDisapprovalReason}}</span>
      </td>
    </tr>
    <tr>
      <td>
        <b>7.C APPROVED FOR:</b><br>
        <span class="blank">{{.ApprovedDaysWithPay}}</span> days with pay<br>
        <span class="blank">{{.ApprovedDaysWithoutPay}}</span> days without pay<br>
        <span class="blank">{{.ApprovedOthers}}</span> others (Specify)
      </td>
      <td>
        <b>7.D DISAPPROVED DUE TO:</b><br>
        <span class="blank">{{.DisapprovalReason}}</span>
      </td>
    </tr>
  </table>
</div>
</body>
</html>
`
